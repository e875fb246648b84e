// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment service.
// It implements decision logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - BoxSelector: picks the smallest suitable box for an order's payload
//   - RateShopper: picks the cheapest permitted rate from a carrier quote
//
// Both services are pure: they take candidates and return a choice, with
// no I/O, so the selection rules can be tested exhaustively.
package services
