package normalizer_test

import (
	"context"
	"testing"

	"github.com/solody/commerce-order-api/internal/core/application/normalizer"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrice(t *testing.T, amount, currency string) money.Price {
	t.Helper()
	p, err := money.NewPriceFromString(amount, currency)
	require.NoError(t, err)
	return p
}

func profileNode(t *testing.T) (*normalizer.Node, kernel.UUID) {
	t.Helper()
	id := kernel.NewUUID()
	return &normalizer.Node{Kind: normalizer.KindProfile, Fields: []normalizer.Field{
		{Name: "profile_id", Value: normalizer.Scalar{V: id.String()}},
		{Name: "given_name", Value: normalizer.Scalar{V: "Ada"}},
	}}, id
}

func TestNormalizer_FlattensPricesAndAdjustments(t *testing.T) {
	pct := decimal.NewFromFloat(0.1)
	adj, err := order.NewAdjustment(
		"promotion", "10% off", mustPrice(t, "-2", "USD"), "promo-1", &pct, true)
	require.NoError(t, err)

	node := &normalizer.Node{Kind: normalizer.KindOrder, Fields: []normalizer.Field{
		{Name: "total_price", Value: normalizer.PriceValue{Price: mustPrice(t, "18", "USD")}},
		{Name: "adjustments", Value: normalizer.List{Items: []normalizer.Value{
			normalizer.AdjustmentValue{Adjustment: adj},
		}}},
	}}

	doc, err := normalizer.NewNormalizer().Normalize(t.Context(), node)

	require.NoError(t, err)
	assert.Equal(t, normalizer.Document{
		"number":        "18",
		"currency_code": "USD",
	}, doc["total_price"])

	adjustments, ok := doc["adjustments"].([]any)
	require.True(t, ok)
	require.Len(t, adjustments, 1)
	assert.Equal(t, normalizer.Document{
		"type":       "promotion",
		"label":      "10% off",
		"amount":     normalizer.Document{"number": "-2", "currency_code": "USD"},
		"source_id":  "promo-1",
		"locked":     true,
		"percentage": "0.1",
	}, adjustments[0])
}

func TestNormalizer_ExpandsProfileReferenceUnderOrder(t *testing.T) {
	// Given a profile reference whose owning entity is an order
	target, targetID := profileNode(t)
	node := &normalizer.Node{Kind: normalizer.KindOrder, Fields: []normalizer.Field{
		{Name: "billing_profile", Value: normalizer.Reference{
			TargetKind: normalizer.KindProfile,
			TargetType: "profile",
			TargetID:   targetID,
			Resolve: func(context.Context) (*normalizer.Node, error) {
				return target, nil
			},
		}},
	}}

	// When normalizing
	doc, err := normalizer.NewNormalizer().Normalize(t.Context(), node)

	// Then the full profile document is inlined
	require.NoError(t, err)
	expanded, ok := doc["billing_profile"].(normalizer.Document)
	require.True(t, ok)
	assert.Equal(t, "Ada", expanded["given_name"])
	assert.Equal(t, targetID.String(), expanded["profile_id"])
}

func TestNormalizer_SameReferenceStaysBareElsewhere(t *testing.T) {
	// Given the identical profile reference owned by a non-order entity
	target, targetID := profileNode(t)
	node := &normalizer.Node{Kind: normalizer.KindLineItem, Fields: []normalizer.Field{
		{Name: "some_profile", Value: normalizer.Reference{
			TargetKind: normalizer.KindProfile,
			TargetType: "profile",
			TargetID:   targetID,
			Resolve: func(context.Context) (*normalizer.Node, error) {
				return target, nil
			},
		}},
	}}

	// When normalizing
	doc, err := normalizer.NewNormalizer().Normalize(t.Context(), node)

	// Then the reference keeps the bare default representation
	require.NoError(t, err)
	assert.Equal(t, normalizer.Document{
		"target_type": "profile",
		"target_id":   targetID.String(),
	}, doc["some_profile"])
}

func TestNormalizer_NonExpandableReferenceStaysBareUnderOrder(t *testing.T) {
	targetID := kernel.NewUUID()
	node := &normalizer.Node{Kind: normalizer.KindOrder, Fields: []normalizer.Field{
		{Name: "purchased_entity", Value: normalizer.Reference{
			TargetType: "product_variation",
			TargetID:   targetID,
		}},
	}}

	doc, err := normalizer.NewNormalizer().Normalize(t.Context(), node)

	require.NoError(t, err)
	assert.Equal(t, normalizer.Document{
		"target_type": "product_variation",
		"target_id":   targetID.String(),
	}, doc["purchased_entity"])
}

type fakeProfiles struct {
	byID map[kernel.UUID]*profile.Profile
}

func (f fakeProfiles) Get(_ context.Context, id kernel.UUID) (*profile.Profile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errs.NewObjectNotFoundError("profileId", id)
}

func (f fakeProfiles) GetDefaultActiveForOwner(context.Context, kernel.UUID) (*profile.Profile, error) {
	return nil, errs.NewObjectNotFoundError("ownerId", nil)
}

type fakeCatalog struct {
	byID map[kernel.UUID]ports.PurchasableEntity
}

func (f fakeCatalog) HasDefinition(string) bool { return true }

func (f fakeCatalog) Load(_ context.Context, _ string, id kernel.UUID) (ports.PurchasableEntity, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, errs.NewObjectNotFoundError("purchasedEntityId", id)
}

type fakePurchasable struct {
	id      kernel.UUID
	price   money.Price
	product *ports.ParentProduct
}

func (f fakePurchasable) ID() kernel.UUID                     { return f.id }
func (f fakePurchasable) EntityType() string                  { return "product_variation" }
func (f fakePurchasable) Title() string                       { return "Variation" }
func (f fakePurchasable) Price() money.Price                  { return f.price }
func (f fakePurchasable) StoreIDs() []kernel.UUID             { return nil }
func (f fakePurchasable) ParentProduct() *ports.ParentProduct { return f.product }

func builderOrder(t *testing.T, entityID kernel.UUID, profileID *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "default", kernel.NewUUID(), kernel.NewUUID(), "USD")
	require.NoError(t, err)

	li, err := order.NewLineItem(
		kernel.NewUUID(),
		order.EntityRef{EntityType: "product_variation", ID: entityID},
		"Variation", 2, mustPrice(t, "10", "USD"))
	require.NoError(t, err)
	require.NoError(t, o.AddLineItem(li, true))

	if profileID != nil {
		require.NoError(t, o.SetBillingProfile(*profileID))
	}
	return o
}

func TestOrderGraphBuilder_FullDocument(t *testing.T) {
	// Given an order with a billing profile and a line item whose purchased
	// entity has a parent product
	ctx := t.Context()
	entityID := kernel.NewUUID()
	productID := kernel.NewUUID()

	ownerID := kernel.NewUUID()
	billing, err := profile.NewProfile(
		kernel.NewUUID(), ownerID, "Ada",
		profile.Address{CountryCode: "NL", Locality: "Amsterdam", AddressLine1: "Main 1", PostalCode: "1011"},
		true, true)
	require.NoError(t, err)
	billingID := billing.ID()

	aggregate := builderOrder(t, entityID, &billingID)

	catalog := fakeCatalog{byID: map[kernel.UUID]ports.PurchasableEntity{
		entityID: fakePurchasable{
			id:    entityID,
			price: mustPrice(t, "10", "USD"),
			product: &ports.ParentProduct{
				ID:   productID,
				Name: "T-Shirt",
				Type: "apparel",
			},
		},
	}}
	profiles := fakeProfiles{byID: map[kernel.UUID]*profile.Profile{billingID: billing}}

	builder := normalizer.NewOrderGraphBuilder(profiles, catalog)
	node, err := builder.BuildOrder(aggregate)
	require.NoError(t, err)

	// When normalizing
	doc, err := normalizer.NewNormalizer().Normalize(ctx, node)
	require.NoError(t, err)

	// Then the billing profile is inlined
	billingDoc, ok := doc["billing_profile"].(normalizer.Document)
	require.True(t, ok)
	assert.Equal(t, "Ada", billingDoc["given_name"])

	// And the line item is inlined with the parent product snapshot, its
	// purchased entity staying a bare reference
	items, ok := doc["order_items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	itemDoc, ok := items[0].(normalizer.Document)
	require.True(t, ok)
	assert.Equal(t, 2, itemDoc["quantity"])
	assert.Equal(t, normalizer.Document{
		"number":        "20",
		"currency_code": "USD",
	}, itemDoc["total_price"])
	assert.Equal(t, normalizer.Document{
		"target_type": "product_variation",
		"target_id":   entityID.String(),
	}, itemDoc["purchased_entity"])
	assert.Equal(t, map[string]any{
		"id":    productID.String(),
		"name":  "T-Shirt",
		"type":  "apparel",
		"image": "",
	}, itemDoc["_product"])
}

func TestOrderGraphBuilder_NoParentProductAddsNothing(t *testing.T) {
	ctx := t.Context()
	entityID := kernel.NewUUID()
	aggregate := builderOrder(t, entityID, nil)

	catalog := fakeCatalog{byID: map[kernel.UUID]ports.PurchasableEntity{
		entityID: fakePurchasable{id: entityID, price: mustPrice(t, "10", "USD")},
	}}

	builder := normalizer.NewOrderGraphBuilder(fakeProfiles{}, catalog)
	node, err := builder.BuildOrder(aggregate)
	require.NoError(t, err)

	doc, err := normalizer.NewNormalizer().Normalize(ctx, node)
	require.NoError(t, err)

	items := doc["order_items"].([]any)
	itemDoc := items[0].(normalizer.Document)
	_, present := itemDoc["_product"]
	assert.False(t, present)
	_, present = doc["billing_profile"]
	assert.False(t, present)
}

func TestOrderGraphBuilder_DanglingProfileRendersBare(t *testing.T) {
	ctx := t.Context()
	entityID := kernel.NewUUID()
	missingProfile := kernel.NewUUID()
	aggregate := builderOrder(t, entityID, &missingProfile)

	catalog := fakeCatalog{byID: map[kernel.UUID]ports.PurchasableEntity{
		entityID: fakePurchasable{id: entityID, price: mustPrice(t, "10", "USD")},
	}}

	builder := normalizer.NewOrderGraphBuilder(fakeProfiles{}, catalog)
	node, err := builder.BuildOrder(aggregate)
	require.NoError(t, err)

	doc, err := normalizer.NewNormalizer().Normalize(ctx, node)
	require.NoError(t, err)

	assert.Equal(t, normalizer.Document{
		"target_type": "profile",
		"target_id":   missingProfile.String(),
	}, doc["billing_profile"])
}
