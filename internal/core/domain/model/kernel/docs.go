// Package kernel contains shared domain primitives used by every aggregate
// in the order model. It currently holds the UUID identifier value object.
package kernel
