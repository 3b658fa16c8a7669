// Package order contains the order aggregate: the Order root, its owned
// LineItems and Adjustments, and the catalog EntityRef value. State changes
// go through workflow transitions; everything else is append-or-rollback.
package order
