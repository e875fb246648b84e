// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BoxRepoFactory provides access to the box repository within a transaction.
	BoxRepoFactory interface {
		BoxRepository() ports.BoxRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PrintJobRepoFactory provides access to the print job repository within a transaction.
	PrintJobRepoFactory interface {
		PrintJobRepository() ports.PrintJobRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// SaleRepoFactory provides access to the sale repository within a transaction.
	SaleRepoFactory interface {
		SaleRepository() ports.SaleRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PrintQueueUoW manages transactions over the print queue and the
	// shipments whose labels it carries.
	PrintQueueUoW interface {
		TxManager
		PrintJobRepoFactory
		ShipmentRepoFactory
		OrderRepoFactory
	}

	// PrintQueueUoWFactory creates new print queue unit of work instances.
	PrintQueueUoWFactory interface {
		Create() PrintQueueUoW
	}

	// FulfillmentUoW manages transactions for the fulfillment pipeline:
	// the order, the box configuration, the shipment built from them, and
	// the print job queued at the end.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		BoxRepoFactory
		ShipmentRepoFactory
		PrintJobRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// CompletionUoW manages transactions for print completion handling,
	// which touches every aggregate: the job and its order, then
	// inventory, the customer record, and the sale record.
	//
	// Completion handlers intentionally run each bookkeeping step in its
	// own short transaction from a fresh unit of work, so a failure in a
	// later step never rolls back an earlier committed one.
	CompletionUoW interface {
		TxManager
		OrderRepoFactory
		PrintJobRepoFactory
		ShipmentRepoFactory
		CustomerRepoFactory
		SaleRepoFactory
		ProductRepoFactory
	}

	// CompletionUoWFactory creates new completion unit of work instances.
	CompletionUoWFactory interface {
		Create() CompletionUoW
	}
)
