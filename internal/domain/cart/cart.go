package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

// Cart is a buyer's single pending basket. Lines for the same product are
// kept separate, in the order they were added.
type Cart struct {
	ID        uuid.UUID
	BuyerID   uuid.UUID
	Items     []Item
	CreatedAt time.Time
}

type Item struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	AddedAt   time.Time

	// Product is the live catalog row, loaded with the cart.
	Product *catalog.Product
}

// MaxQuantity bounds a single line.
const MaxQuantity = 10000

// CheckQuantity records on v why quantity cannot be a cart line, if it can't.
func CheckQuantity(v *apperror.ValidationError, quantity int) {
	switch {
	case quantity < 1:
		v.Add("quantity", "must be at least 1")
	case quantity > MaxQuantity:
		v.Add("quantity", fmt.Sprintf("must be at most %d", MaxQuantity))
	}
}

func New(id, buyerID uuid.UUID, now time.Time) *Cart {
	return &Cart{ID: id, BuyerID: buyerID, CreatedAt: now}
}

func NewItem(id, productID uuid.UUID, quantity int, now time.Time) (Item, error) {
	v := apperror.NewValidationError()
	CheckQuantity(v, quantity)
	if err := v.Err(); err != nil {
		return Item{}, err
	}
	return Item{ID: id, ProductID: productID, Quantity: quantity, AddedAt: now}, nil
}

// LineTotal prices the line at the product's current price.
func (i Item) LineTotal() money.Money {
	if i.Product == nil {
		return money.Zero()
	}
	return i.Product.Price.Times(i.Quantity)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal is informational; the order total is fixed at checkout.
func (c *Cart) Subtotal() money.Money {
	total := money.Zero()
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
