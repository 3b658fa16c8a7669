package normalizer

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
)

// Kind identifies what sort of entity a node or reference target represents.
type Kind string

const (
	KindOrder    Kind = "commerce_order"
	KindLineItem Kind = "commerce_order_item"
	KindProfile  Kind = "profile"
)

// Node is one entity in the graph to be normalized: its kind plus an ordered
// list of named fields.
type Node struct {
	Kind   Kind
	Fields []Field
}

// Field is a named value on a node.
type Field struct {
	Name  string
	Value Value
}

// Value is one of the variants below. The normalizer dispatches on the
// concrete variant together with the ancestry context.
type Value interface {
	isValue()
}

// Scalar is a plain value rendered as-is.
type Scalar struct {
	V any
}

// PriceValue renders as a flat {number, currency_code} record.
type PriceValue struct {
	Price money.Price
}

// AdjustmentValue renders as a flat record with its price flattened inside.
type AdjustmentValue struct {
	Adjustment order.Adjustment
}

// Reference points at another entity. TargetType is the wire name of the
// target entity type. Resolve loads the full target node for contextual
// expansion; Extra supplies additional keys appended to the expanded
// document, such as the parent product snapshot on line items. Both may be
// nil.
type Reference struct {
	TargetKind Kind
	TargetType string
	TargetID   kernel.UUID
	Resolve    func(ctx context.Context) (*Node, error)
	Extra      func(ctx context.Context) (map[string]any, error)
}

// List is an ordered collection of values sharing the owner's ancestry.
type List struct {
	Items []Value
}

func (Scalar) isValue()          {}
func (PriceValue) isValue()      {}
func (AdjustmentValue) isValue() {}
func (Reference) isValue()       {}
func (List) isValue()            {}
