package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "2.50", want: "2.50"},
		{in: "2.5", want: "2.50"},
		{in: "0.01", want: "0.01"},
		{in: "2.5000", want: "2.50"},
		{in: "99999999.99", want: "99999999.99"},
		{in: "0", wantErr: ErrNotPositive},
		{in: "-1", wantErr: ErrNotPositive},
		{in: "2.501", wantErr: ErrTooManyPlaces},
		{in: "100000000", wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			price, err := NewPrice(decimal.RequireFromString(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, price.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, price.String())
		})
	}
}

func TestMoney_FitsTotal(t *testing.T) {
	assert.True(t, MustPrice("99999999.99").Times(100).FitsTotal())
	assert.False(t, MustPrice("99999999.99").Times(101).FitsTotal())
	assert.True(t, Zero().FitsTotal())
}

func TestMoney_Arithmetic(t *testing.T) {
	total := Zero().
		Add(MustPrice("2.50").Times(2)).
		Add(MustPrice("0.10").Times(3)).
		Add(MustPrice("19.99").Times(1))

	assert.Equal(t, "25.29", total.String())
	assert.True(t, total.Equal(MustPrice("25.29")))
	assert.Equal(t, 1, total.Cmp(MustPrice("25.28")))
}

func TestMoney_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: MustPrice("5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"5.00"}`, string(out))

	var in struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2.50","b":3.1}`), &in))
	assert.Equal(t, "2.50", in.A.String())
	assert.Equal(t, "3.10", in.B.String())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"abc"}`), &in))
}
