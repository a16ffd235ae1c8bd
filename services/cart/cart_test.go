package cart

import (
	"context"
	"testing"

	"glowbook/models"
	"glowbook/services/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCart() *DefaultCartService {
	return NewDefaultCartService(kvstore.NewMemoryStore(), zap.NewNop())
}

func TestAddIncrementsExistingLine(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	item := models.CartLineItem{ID: "s1", Name: "Haircut", Price: 300, Quantity: 1, StaffID: "st1", Kind: models.LineItemService}
	require.NoError(t, svc.Add(ctx, "u1", item))
	require.NoError(t, svc.Add(ctx, "u1", item))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddSameServiceDifferentStaffStaysSeparate(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 1, StaffID: "st1"}))
	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 1, StaffID: "st2"}))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 0, StaffID: "st1"}))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 1, StaffID: "st1"}))
	require.NoError(t, svc.Remove(ctx, "u1", "s1", "st1"))
	require.NoError(t, svc.Remove(ctx, "u1", "s1", "st1"))
	require.NoError(t, svc.Remove(ctx, "u1", "missing", "st1"))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetQuantityClampsAtOne(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 2, StaffID: "st1"}))
	require.NoError(t, svc.SetQuantity(ctx, "u1", "s1", "st1", -5))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// Unknown items are ignored, not created.
	require.NoError(t, svc.SetQuantity(ctx, "u1", "ghost", "st1", 3))
	items, err = svc.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGroupByStaffSplitsKinds(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Price: 100, Quantity: 1, StaffID: "st1", Kind: models.LineItemService}))
	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "p1", Price: 500, Quantity: 1, StaffID: "st1", Kind: models.LineItemPackage}))
	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s2", Price: 200, Quantity: 2, StaffID: "st2", Kind: models.LineItemService}))

	groups, err := svc.GroupByStaff(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	g1 := groups["st1"]
	assert.Len(t, g1.Services, 1)
	assert.Len(t, g1.Packages, 1)
	assert.Equal(t, 600.0, g1.Subtotal())

	g2 := groups["st2"]
	assert.Len(t, g2.Services, 1)
	assert.Empty(t, g2.Packages)
	assert.Equal(t, 400.0, g2.Subtotal())
}

func TestRemoveBookedOnlyTouchesThatStaff(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 1, StaffID: "st1"}))
	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s1", Quantity: 1, StaffID: "st2"}))
	require.NoError(t, svc.Add(ctx, "u1", models.CartLineItem{ID: "s2", Quantity: 1, StaffID: "st1"}))

	booked := []models.CartLineItem{{ID: "s1", StaffID: "st1"}}
	require.NoError(t, svc.RemoveBooked(ctx, "u1", "st1", booked))

	items, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.False(t, it.ID == "s1" && it.StaffID == "st1")
	}
}

func TestEmptyCartLoads(t *testing.T) {
	svc := newTestCart()

	items, err := svc.Items(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}
