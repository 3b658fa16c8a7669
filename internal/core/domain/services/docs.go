// Package services provides domain services that implement business rules
// spanning more than one aggregate or entity.
//
// The package includes:
//   - StoreSelector: picks the store an order is placed against
//   - ChainOrderTypeResolver: decides the order type for a line item draft
//
// Domain services hold no state of their own and are safe for concurrent use.
package services
