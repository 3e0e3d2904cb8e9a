package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

func ptr[T any](v T) *T { return &v }

func validInput() ProductInput {
	return ProductInput{
		Name:              ptr("Tomatoes"),
		Description:       ptr("Vine ripened"),
		Price:             ptr(decimal.RequireFromString("2.50")),
		QuantityAvailable: ptr(40),
		HarvestDate:       ptr("2026-10-01"),
		ExpiryDate:        ptr("2026-10-20"),
	}
}

func TestNewProduct(t *testing.T) {
	id, seller := uuid.New(), uuid.New()
	now := time.Now().UTC()

	t.Run("valid", func(t *testing.T) {
		v := apperror.NewValidationError()
		p := NewProduct(id, seller, validInput(), now, v)

		require.NoError(t, v.Err())
		assert.Equal(t, "Tomatoes", p.Name)
		assert.Equal(t, "2.50", p.Price.String())
		assert.Equal(t, 40, p.QuantityAvailable)
		assert.Equal(t, "2026-10-01", p.HarvestDate.Format(DateLayout))
		assert.True(t, p.OwnedBy(seller))
		assert.Nil(t, p.CategoryID)
	})

	t.Run("reports every offending field", func(t *testing.T) {
		in := ProductInput{
			Name:              ptr("  "),
			Price:             ptr(decimal.RequireFromString("-1")),
			QuantityAvailable: ptr(-3),
			HarvestDate:       ptr("01/10/2026"),
		}
		v := apperror.NewValidationError()
		NewProduct(id, seller, in, now, v)

		require.Error(t, v.Err())
		for _, field := range []string{"name", "price", "quantity_available", "harvest_date", "expiry_date"} {
			assert.True(t, v.Has(field), field)
		}
		assert.Equal(t, []string{money.ErrNotPositive.Error()}, v.Fields["price"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		v := apperror.NewValidationError()
		NewProduct(id, seller, ProductInput{}, now, v)

		assert.Len(t, v.Fields, 4)
	})
}

func TestProduct_Apply(t *testing.T) {
	v := apperror.NewValidationError()
	p := NewProduct(uuid.New(), uuid.New(), validInput(), time.Now(), v)
	require.NoError(t, v.Err())

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		v := apperror.NewValidationError()
		p.Apply(ProductInput{Price: ptr(decimal.RequireFromString("3.10"))}, v)

		require.NoError(t, v.Err())
		assert.Equal(t, "3.10", p.Price.String())
		assert.Equal(t, "Tomatoes", p.Name)
	})

	t.Run("sets and clears category", func(t *testing.T) {
		cat := uuid.New()
		p.Apply(ProductInput{CategoryID: &cat}, apperror.NewValidationError())
		require.NotNil(t, p.CategoryID)
		assert.Equal(t, cat, *p.CategoryID)

		p.Apply(ProductInput{CategoryID: ptr(uuid.Nil)}, apperror.NewValidationError())
		assert.Nil(t, p.CategoryID)
	})

	t.Run("replace requires every mandatory field", func(t *testing.T) {
		v := apperror.NewValidationError()
		p.Replace(ProductInput{Name: ptr("Cherry Tomatoes")}, v)

		assert.True(t, v.Has("price"))
		assert.True(t, v.Has("harvest_date"))
		assert.False(t, v.Has("name"))
	})

	t.Run("rejects more than two decimal places", func(t *testing.T) {
		v := apperror.NewValidationError()
		p.Apply(ProductInput{Price: ptr(decimal.RequireFromString("1.999"))}, v)

		assert.True(t, v.Has("price"))
		assert.Equal(t, "3.10", p.Price.String())
	})
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(uuid.New(), " Fruits ")
	require.NoError(t, err)
	assert.Equal(t, "Fruits", c.Name)

	_, err = NewCategory(uuid.New(), "")
	assert.Error(t, err)
}

func TestFilter_Matches(t *testing.T) {
	cat := uuid.New()
	p := &Product{
		ID:         uuid.New(),
		Name:       "Green Apples",
		Price:      money.MustPrice("4.00"),
		CategoryID: &cat,
	}
	other := uuid.New()

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "name case insensitive", filter: Filter{NameContains: "apple"}, want: true},
		{name: "name mismatch", filter: Filter{NameContains: "pear"}, want: false},
		{name: "category", filter: Filter{CategoryID: &cat}, want: true},
		{name: "other category", filter: Filter{CategoryID: &other}, want: false},
		{name: "price bounds inclusive", filter: Filter{MinPrice: ptr(decimal.RequireFromString("4")), MaxPrice: ptr(decimal.RequireFromString("4.00"))}, want: true},
		{name: "below min", filter: Filter{MinPrice: ptr(decimal.RequireFromString("4.01"))}, want: false},
		{name: "restricted out", filter: Filter{RestrictIDs: true}, want: false},
		{name: "restricted in", filter: Filter{RestrictIDs: true, IDs: []uuid.UUID{p.ID}}, want: true},
		{name: "conjunctive", filter: Filter{NameContains: "apple", CategoryID: &other}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}
