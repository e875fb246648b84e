// Package order provides domain entities and business logic for order
// management in the fulfillment service. It implements the Order aggregate
// root with lifecycle management, failure classification, and the guard
// flags protecting once-only side effects.
//
// The package includes:
//   - Order: The aggregate root tying the shop payload, the shipment, the
//     print queue, and the downstream bookkeeping into one lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - FailureKind: Classification of pipeline failures, with retryability
//   - Line: An immutable order line item with weight and price
//
// Key business rules:
//   - Orders are keyed by the shop-assigned order ID; re-importing a known
//     ID updates the order rather than duplicating it
//   - Status follows Imported -> Fulfilling -> Printed -> Shipped, with
//     Failed and Cancelled as classified exits
//   - Line items are frozen once fulfillment starts
//   - Inventory deduction and sale record creation happen at most once per
//     order, guarded by flags that persist across retries
//   - An order references at most one shipment and at most one sale record
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
