package avro

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/domain/order"
)

func TestOrderPlacedCodec_RoundTrip(t *testing.T) {
	codec, err := NewOrderPlacedCodec()
	require.NoError(t, err)

	seller := uuid.New()
	ev := order.Placed{
		OrderID:     uuid.New(),
		BuyerID:     uuid.New(),
		TotalAmount: "5.30",
		PlacedAt:    time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
		Lines: []order.PlacedLine{
			{ProductID: uuid.NewString(), ProductName: "Kale", SellerID: seller, Quantity: 2, PriceAtTime: "2.50"},
			{ProductName: "Deleted thing", SellerID: seller, Quantity: 1, PriceAtTime: "0.30"},
		},
	}

	data, err := codec.Encode(ev)
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestOrderPlacedCodec_DecodeGarbage(t *testing.T) {
	codec, err := NewOrderPlacedCodec()
	require.NoError(t, err)

	_, err = codec.Decode([]byte{0x02, 0xff})
	assert.Error(t, err)
}

func TestNewEncoder_InvalidSchema(t *testing.T) {
	_, err := NewEncoder(`{"type": "record"}`)
	assert.Error(t, err)
}
