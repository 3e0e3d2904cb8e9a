// Package money is the exact two-decimal amount used for prices and totals.
package money

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fraction digits every amount carries.
const Places = 2

var (
	ErrNotPositive   = errors.New("must be greater than 0")
	ErrTooManyPlaces = errors.New("must have at most 2 decimal places")
	ErrTooLarge      = errors.New("must have at most 10 digits")

	// prices are NUMERIC(10,2), order totals NUMERIC(12,2)
	priceCeiling = decimal.New(1, 8)
	totalCeiling = decimal.New(1, 10)
)

type Money struct {
	value decimal.Decimal
}

func Zero() Money {
	return Money{}
}

// NewPrice validates d as a catalog price: positive, at most two fraction
// digits and at most ten digits overall.
func NewPrice(d decimal.Decimal) (Money, error) {
	if !d.IsPositive() {
		return Money{}, ErrNotPositive
	}
	if !d.Equal(d.Round(Places)) {
		return Money{}, ErrTooManyPlaces
	}
	if d.GreaterThanOrEqual(priceCeiling) {
		return Money{}, ErrTooLarge
	}
	return Money{value: d.Round(Places)}, nil
}

// MustPrice is NewPrice for literals known to be valid.
func MustPrice(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	p, err := NewPrice(m.value)
	if err != nil {
		panic(fmt.Sprintf("money: %q: %v", s, err))
	}
	return p
}

// Parse reads a stored amount. It does not apply price rules.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Money{value: d.Round(Places)}, nil
}

func (m Money) Add(o Money) Money {
	return Money{value: m.value.Add(o.value)}
}

// Times multiplies by an item quantity. Inputs with two places stay exact.
func (m Money) Times(qty int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(qty)))}
}

// FitsTotal reports whether m can be stored as an order total.
func (m Money) FitsTotal() bool {
	return m.value.LessThan(totalCeiling)
}

func (m Money) Decimal() decimal.Decimal {
	return m.value
}

func (m Money) Cmp(o Money) int {
	return m.value.Cmp(o.value)
}

func (m Money) Equal(o Money) bool {
	return m.value.Equal(o.value)
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// String renders the amount with exactly two fraction digits, e.g. "5.00".
func (m Money) String() string {
	return m.value.StringFixed(Places)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both "2.50" and 2.5.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
