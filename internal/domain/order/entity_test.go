package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.TotalAmount.IsZero())
	assert.True(t, o.Reconciles())
}

func TestNewOrder_MissingBuyer(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.Nil, time.Now())

	assert.ErrorIs(t, err, ErrMissingField)
	assert.Nil(t, o)
}

func TestOrder_AddLine(t *testing.T) {
	sellerA, sellerB := uuid.New(), uuid.New()
	carrots := &catalog.Product{ID: uuid.New(), Name: "Carrots", Price: money.MustPrice("0.10"), SellerID: sellerA}
	honey := &catalog.Product{ID: uuid.New(), Name: "Honey", Price: money.MustPrice("12.99"), SellerID: sellerB}

	o, err := NewOrder(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	require.NoError(t, o.AddLine(uuid.New(), carrots, 3))
	require.NoError(t, o.AddLine(uuid.New(), honey, 1))
	assert.ErrorIs(t, o.AddLine(uuid.New(), honey, 0), ErrInvalidQuantity)

	assert.Equal(t, "13.29", o.TotalAmount.String())
	assert.True(t, o.Reconciles())
	assert.True(t, o.HasSeller(sellerA))
	assert.False(t, o.HasSeller(uuid.New()))

	// the snapshot does not follow later price changes
	carrots.Price = money.MustPrice("9.00")
	assert.Equal(t, "0.10", o.Items[0].PriceAtTime.String())

	groups := o.LinesBySeller()
	assert.Len(t, groups, 2)
	assert.Equal(t, "Honey", groups[sellerB][0].ProductName)

	ev := o.PlacedEvent()
	assert.Equal(t, "13.29", ev.TotalAmount)
	assert.Len(t, ev.Lines, 2)
	assert.Equal(t, carrots.ID.String(), ev.Lines[0].ProductID)
}

func TestOrder_AddLine_TotalCeiling(t *testing.T) {
	dear := &catalog.Product{ID: uuid.New(), Name: "Saffron", Price: money.MustPrice("99999999.99"), SellerID: uuid.New()}

	o, err := NewOrder(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	require.NoError(t, o.AddLine(uuid.New(), dear, 100))
	assert.Equal(t, "9999999999.00", o.TotalAmount.String())

	assert.ErrorIs(t, o.AddLine(uuid.New(), dear, 1), ErrTotalTooLarge)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, "9999999999.00", o.TotalAmount.String())
	assert.True(t, o.Reconciles())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("accepted")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
