package cart

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

func TestNewItem(t *testing.T) {
	_, err := NewItem(uuid.New(), uuid.New(), 0, time.Now())

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("quantity"))

	_, err = NewItem(uuid.New(), uuid.New(), MaxQuantity+1, time.Now())
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"must be at most 10000"}, verr.Fields["quantity"])

	it, err := NewItem(uuid.New(), uuid.New(), 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity)

	it, err = NewItem(uuid.New(), uuid.New(), MaxQuantity, time.Now())
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, it.Quantity)
}

func TestCart_Subtotal(t *testing.T) {
	tomato := &catalog.Product{ID: uuid.New(), Price: money.MustPrice("2.50")}
	eggs := &catalog.Product{ID: uuid.New(), Price: money.MustPrice("0.10")}

	c := New(uuid.New(), uuid.New(), time.Now())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "0.00", c.Subtotal().String())

	c.Items = []Item{
		{ID: uuid.New(), ProductID: tomato.ID, Quantity: 2, Product: tomato},
		{ID: uuid.New(), ProductID: eggs.ID, Quantity: 3, Product: eggs},
		{ID: uuid.New(), ProductID: tomato.ID, Quantity: 1, Product: tomato},
	}

	assert.False(t, c.IsEmpty())
	assert.Equal(t, "7.80", c.Subtotal().String())
	assert.Equal(t, "0.30", c.Items[1].LineTotal().String())
}
