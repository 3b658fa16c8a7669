package normalizer

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// OrderGraphBuilder turns domain aggregates into node graphs. Reference
// targets are resolved lazily so a bare rendering never touches the profile
// store or the catalog.
type OrderGraphBuilder struct {
	profiles ports.ProfileRepository
	catalog  ports.PurchasableCatalog
}

// NewOrderGraphBuilder creates a builder over the given profile and catalog
// lookups.
func NewOrderGraphBuilder(
	profiles ports.ProfileRepository, catalog ports.PurchasableCatalog) OrderGraphBuilder {
	return OrderGraphBuilder{profiles: profiles, catalog: catalog}
}

// BuildOrder constructs the node graph for an order aggregate.
func (b OrderGraphBuilder) BuildOrder(aggregate *order.Order) (*Node, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	total, err := aggregate.TotalPrice()
	if err != nil {
		return nil, err
	}

	adjustments := make([]Value, 0, len(aggregate.Adjustments()))
	for _, a := range aggregate.Adjustments() {
		adjustments = append(adjustments, AdjustmentValue{Adjustment: a})
	}

	items := make([]Value, 0, len(aggregate.LineItems()))
	for _, li := range aggregate.LineItems() {
		items = append(items, b.lineItemReference(li))
	}

	fields := []Field{
		{Name: "order_id", Value: Scalar{V: aggregate.ID().String()}},
		{Name: "type", Value: Scalar{V: aggregate.TypeID()}},
		{Name: "store_id", Value: Scalar{V: aggregate.StoreID().String()}},
		{Name: "uid", Value: Scalar{V: aggregate.CustomerID().String()}},
		{Name: "state", Value: Scalar{V: string(aggregate.State())}},
		{Name: "total_price", Value: PriceValue{Price: total}},
		{Name: "adjustments", Value: List{Items: adjustments}},
		{Name: "order_items", Value: List{Items: items}},
	}

	if profileID := aggregate.BillingProfileID(); profileID != nil {
		fields = append(fields, Field{
			Name: "billing_profile",
			Value: Reference{
				TargetKind: KindProfile,
				TargetType: "profile",
				TargetID:   *profileID,
				Resolve:    b.profileResolver(*profileID),
			},
		})
	}

	return &Node{Kind: KindOrder, Fields: fields}, nil
}

// BuildProfile constructs the node graph for a customer profile.
func (b OrderGraphBuilder) BuildProfile(p *profile.Profile) *Node {
	address := p.Address()
	return &Node{Kind: KindProfile, Fields: []Field{
		{Name: "profile_id", Value: Scalar{V: p.ID().String()}},
		{Name: "uid", Value: Scalar{V: p.OwnerID().String()}},
		{Name: "given_name", Value: Scalar{V: p.GivenName()}},
		{Name: "address", Value: Scalar{V: map[string]any{
			"country_code":  address.CountryCode,
			"locality":      address.Locality,
			"address_line1": address.AddressLine1,
			"postal_code":   address.PostalCode,
		}}},
		{Name: "is_default", Value: Scalar{V: p.IsDefault()}},
		{Name: "status", Value: Scalar{V: p.IsActive()}},
	}}
}

// BuildLineItem constructs the node graph for a line item. The purchased
// entity stays a bare reference; it is neither a profile nor a line item, so
// no position expands it.
func (b OrderGraphBuilder) BuildLineItem(li *order.LineItem) (*Node, error) {
	total, err := li.TotalPrice()
	if err != nil {
		return nil, err
	}

	adjustments := make([]Value, 0, len(li.Adjustments()))
	for _, a := range li.Adjustments() {
		adjustments = append(adjustments, AdjustmentValue{Adjustment: a})
	}

	purchased := li.PurchasedEntity()
	return &Node{Kind: KindLineItem, Fields: []Field{
		{Name: "order_item_id", Value: Scalar{V: li.ID().String()}},
		{Name: "title", Value: Scalar{V: li.Title()}},
		{Name: "quantity", Value: Scalar{V: li.Quantity()}},
		{Name: "purchased_entity", Value: Reference{
			TargetType: purchased.EntityType,
			TargetID:   purchased.ID,
		}},
		{Name: "unit_price", Value: PriceValue{Price: li.UnitPrice()}},
		{Name: "total_price", Value: PriceValue{Price: total}},
		{Name: "adjustments", Value: List{Items: adjustments}},
	}}, nil
}

// lineItemReference wraps a line item in a reference that expands under an
// order and appends the parent product snapshot when one exists.
func (b OrderGraphBuilder) lineItemReference(li *order.LineItem) Reference {
	return Reference{
		TargetKind: KindLineItem,
		TargetType: "commerce_order_item",
		TargetID:   li.ID(),
		Resolve: func(context.Context) (*Node, error) {
			return b.BuildLineItem(li)
		},
		Extra: func(ctx context.Context) (map[string]any, error) {
			return b.parentProductSnapshot(ctx, li)
		},
	}
}

func (b OrderGraphBuilder) profileResolver(id kernel.UUID) func(context.Context) (*Node, error) {
	return func(ctx context.Context) (*Node, error) {
		p, err := b.profiles.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				// A dangling profile reference renders bare instead of
				// failing the whole document.
				return nil, nil
			}
			return nil, err
		}
		return b.BuildProfile(p), nil
	}
}

// parentProductSnapshot loads the purchased entity and denormalizes its
// parent product under the reserved _product key. Entities without a parent
// product, or no longer resolvable ones, add nothing.
func (b OrderGraphBuilder) parentProductSnapshot(
	ctx context.Context, li *order.LineItem) (map[string]any, error) {
	purchased := li.PurchasedEntity()

	entity, err := b.catalog.Load(ctx, purchased.EntityType, purchased.ID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	product := entity.ParentProduct()
	if product == nil {
		return nil, nil
	}

	return map[string]any{
		"_product": map[string]any{
			"id":    product.ID.String(),
			"name":  product.Name,
			"type":  product.Type,
			"image": product.ImageURL,
		},
	}, nil
}
