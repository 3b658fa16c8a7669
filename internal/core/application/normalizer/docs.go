// Package normalizer turns an order object graph into a response document.
//
// The shape of a nested field depends on where it sits in the graph, not only
// on its type. A reference to a billing profile or a line item is expanded
// into the full nested document only when the entity owning the reference is
// an order; the same reference kind anywhere else stays a bare reference.
// Adjustments and prices always flatten into plain records.
//
// The normalizer is read-only and holds no mutable state across calls, so it
// can recurse into nested entities and be used concurrently.
package normalizer
