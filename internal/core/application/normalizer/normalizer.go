package normalizer

import (
	"context"
	"fmt"

	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
)

// Document is the normalized representation of a node.
type Document map[string]any

// ancestry carries graph position down through recursion. ownerIsOrder is
// the positional switch: reference expansion triggers only for fields whose
// owning entity is an order.
type ancestry struct {
	owner        Kind
	ownerIsOrder bool
}

// Normalizer renders node graphs into documents. The zero value is ready to
// use.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() Normalizer {
	return Normalizer{}
}

// Normalize renders the node into a document.
func (n Normalizer) Normalize(ctx context.Context, node *Node) (Document, error) {
	if node == nil {
		return nil, fmt.Errorf("normalize: nil node")
	}
	return n.normalizeNode(ctx, node)
}

func (n Normalizer) normalizeNode(ctx context.Context, node *Node) (Document, error) {
	doc := make(Document, len(node.Fields))
	at := ancestry{owner: node.Kind, ownerIsOrder: node.Kind == KindOrder}

	for _, field := range node.Fields {
		rendered, err := n.renderValue(ctx, field.Value, at)
		if err != nil {
			return nil, fmt.Errorf("normalize %s.%s: %w", node.Kind, field.Name, err)
		}
		doc[field.Name] = rendered
	}

	return doc, nil
}

func (n Normalizer) renderValue(ctx context.Context, v Value, at ancestry) (any, error) {
	switch value := v.(type) {
	case Scalar:
		return value.V, nil
	case PriceValue:
		return flattenPrice(value.Price), nil
	case AdjustmentValue:
		return flattenAdjustment(value.Adjustment), nil
	case Reference:
		return n.renderReference(ctx, value, at)
	case List:
		items := make([]any, 0, len(value.Items))
		for _, item := range value.Items {
			rendered, err := n.renderValue(ctx, item, at)
			if err != nil {
				return nil, err
			}
			items = append(items, rendered)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unknown value variant %T", v)
	}
}

// renderReference decides between contextual expansion and the bare default
// representation. Expansion applies only to profile and line item targets
// referenced directly from an order.
func (n Normalizer) renderReference(ctx context.Context, ref Reference, at ancestry) (any, error) {
	expandable := ref.TargetKind == KindProfile || ref.TargetKind == KindLineItem
	if !expandable || !at.ownerIsOrder || ref.Resolve == nil {
		return bareReference(ref), nil
	}

	target, err := ref.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return bareReference(ref), nil
	}

	doc, err := n.normalizeNode(ctx, target)
	if err != nil {
		return nil, err
	}

	if ref.Extra != nil {
		extra, extraErr := ref.Extra(ctx)
		if extraErr != nil {
			return nil, extraErr
		}
		for key, value := range extra {
			doc[key] = value
		}
	}

	return doc, nil
}

func bareReference(ref Reference) Document {
	return Document{
		"target_type": ref.TargetType,
		"target_id":   ref.TargetID.String(),
	}
}

func flattenPrice(p money.Price) Document {
	return Document{
		"number":        p.Amount().String(),
		"currency_code": p.CurrencyCode(),
	}
}

func flattenAdjustment(a order.Adjustment) Document {
	doc := Document{
		"type":          a.Type(),
		"label":         a.Label(),
		"amount":        flattenPrice(a.Amount()),
		"source_id":     a.SourceID(),
		"locked":        a.IsLocked(),
		"percentage":    nil,
	}
	if pct := a.Percentage(); pct != nil {
		doc["percentage"] = pct.String()
	}
	return doc
}
