// Package kernel provides core domain primitives shared across the fulfillment
// domain model. It implements fundamental building blocks following
// Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Weight: A mass value object stored in grams, constructed from grams or ounces
//   - Volume: A packing volume value object in cubic inches
//   - Address: A postal address snapshot used by orders and customer records
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
