package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/permission"
)

func seedProduct(t *testing.T, s *Store, seller uuid.UUID, price string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{ID: uuid.New(), Name: "Beans", Price: money.MustPrice(price), SellerID: seller, CreatedAt: time.Now()}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestProductDelete_CascadesAndDetaches(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seller, buyer := uuid.New(), uuid.New()
	p := seedProduct(t, s, seller, "2.50")
	keep := seedProduct(t, s, seller, "1.00")

	c, err := s.Carts().GetOrCreate(ctx, cart.New(uuid.New(), buyer, time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Carts().AddItem(ctx, c.ID, cart.Item{ID: uuid.New(), ProductID: p.ID, Quantity: 1}))
	require.NoError(t, s.Carts().AddItem(ctx, c.ID, cart.Item{ID: uuid.New(), ProductID: keep.ID, Quantity: 2}))

	o, err := order.NewOrder(uuid.New(), buyer, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.AddLine(uuid.New(), p, 2))
	require.NoError(t, s.Orders().Create(ctx, o))

	require.NoError(t, s.Products().Delete(ctx, p.ID))

	got, err := s.Carts().FindByBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, keep.ID, got.Items[0].ProductID)

	stored, err := s.Orders().FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Items[0].ProductID)
	assert.Equal(t, "Beans", stored.Items[0].ProductName)
	assert.Equal(t, "5.00", stored.TotalAmount.String())

	sellerOrders, err := s.Orders().ListBySeller(ctx, seller, 0)
	require.NoError(t, err)
	assert.Len(t, sellerOrders, 1)
}

func TestWithinTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seller := uuid.New()
	boom := errors.New("boom")

	var created uuid.UUID
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		p := seedProduct(t, s, seller, "3.00")
		created = p.ID
		require.NoError(t, s.Permissions().Grant(ctx, permission.OwnerGrants(seller, permission.Product(p.ID))...))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	got, err := s.Products().FindByID(ctx, created)
	require.NoError(t, err)
	assert.Nil(t, got)
	ok, err := s.Permissions().HasGrant(ctx, permission.Grant{PrincipalID: seller, Object: permission.Product(created), Capability: permission.View})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	veg := &catalog.Category{ID: uuid.New(), Name: "Vegetables"}
	require.NoError(t, s.Categories().Create(ctx, veg))
	require.NoError(t, s.Categories().Create(ctx, &catalog.Category{ID: uuid.New(), Name: "Dairy"}))

	err := s.Categories().Create(ctx, &catalog.Category{ID: uuid.New(), Name: "Vegetables"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	all, err := s.Categories().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dairy", all[0].Name)

	p := seedProduct(t, s, uuid.New(), "1.00")
	p.CategoryID = &veg.ID
	require.NoError(t, s.Products().Update(ctx, p))
	require.NoError(t, s.Categories().Delete(ctx, veg.ID))

	got, err := s.Products().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestCart_RemoveItemOnlyFromOwnCart(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProduct(t, s, uuid.New(), "1.00")
	a, err := s.Carts().GetOrCreate(ctx, cart.New(uuid.New(), uuid.New(), time.Now()))
	require.NoError(t, err)
	b, err := s.Carts().GetOrCreate(ctx, cart.New(uuid.New(), uuid.New(), time.Now()))
	require.NoError(t, err)

	item := cart.Item{ID: uuid.New(), ProductID: p.ID, Quantity: 1}
	require.NoError(t, s.Carts().AddItem(ctx, a.ID, item))

	removed, err := s.Carts().RemoveItem(ctx, b.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = s.Carts().RemoveItem(ctx, a.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestCart_RemoveItemsKeepsUnlistedLines(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProduct(t, s, uuid.New(), "1.00")
	a, err := s.Carts().GetOrCreate(ctx, cart.New(uuid.New(), uuid.New(), time.Now()))
	require.NoError(t, err)
	b, err := s.Carts().GetOrCreate(ctx, cart.New(uuid.New(), uuid.New(), time.Now()))
	require.NoError(t, err)

	first := cart.Item{ID: uuid.New(), ProductID: p.ID, Quantity: 1}
	late := cart.Item{ID: uuid.New(), ProductID: p.ID, Quantity: 2}
	other := cart.Item{ID: uuid.New(), ProductID: p.ID, Quantity: 3}
	require.NoError(t, s.Carts().AddItem(ctx, a.ID, first))
	require.NoError(t, s.Carts().AddItem(ctx, a.ID, late))
	require.NoError(t, s.Carts().AddItem(ctx, b.ID, other))

	// other belongs to b and must survive even when listed against a
	require.NoError(t, s.Carts().RemoveItems(ctx, a.ID, []uuid.UUID{first.ID, other.ID}))

	got, err := s.Carts().FindByBuyer(ctx, a.BuyerID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, late.ID, got.Items[0].ID)

	got, err = s.Carts().FindByBuyer(ctx, b.BuyerID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}
