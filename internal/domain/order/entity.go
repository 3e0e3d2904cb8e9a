package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

type Order struct {
	ID          uuid.UUID
	BuyerID     uuid.UUID
	Status      Status
	TotalAmount money.Money
	Items       []Item
	CreatedAt   time.Time
}

// Item is an immutable order line. PriceAtTime, ProductName and SellerID are
// copied from the product at checkout; ProductID becomes nil if the product
// is later deleted.
type Item struct {
	ID          uuid.UUID
	ProductID   *uuid.UUID
	ProductName string
	SellerID    uuid.UUID
	Quantity    int
	PriceAtTime money.Money
}

func NewOrder(id, buyerID uuid.UUID, now time.Time) (*Order, error) {
	if id == uuid.Nil || buyerID == uuid.Nil {
		return nil, ErrMissingField
	}
	return &Order{
		ID:          id,
		BuyerID:     buyerID,
		Status:      StatusPending,
		TotalAmount: money.Zero(),
		CreatedAt:   now,
	}, nil
}

// AddLine snapshots p's current price and adds price*quantity to the total.
// The order is left unchanged when the line would push the total past what
// can be stored.
func (o *Order) AddLine(id uuid.UUID, p *catalog.Product, quantity int) error {
	if p == nil {
		return ErrMissingField
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	total := o.TotalAmount.Add(p.Price.Times(quantity))
	if !total.FitsTotal() {
		return ErrTotalTooLarge
	}
	pid := p.ID
	o.Items = append(o.Items, Item{
		ID:          id,
		ProductID:   &pid,
		ProductName: p.Name,
		SellerID:    p.SellerID,
		Quantity:    quantity,
		PriceAtTime: p.Price,
	})
	o.TotalAmount = total
	return nil
}

func (i Item) LineTotal() money.Money {
	return i.PriceAtTime.Times(i.Quantity)
}

// Reconciles reports whether the total equals the sum of its lines.
func (o *Order) Reconciles() bool {
	sum := money.Zero()
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum.Equal(o.TotalAmount)
}

func (o *Order) HasSeller(sellerID uuid.UUID) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// LinesBySeller groups the order lines by the seller that owns them,
// preserving line order within each group.
func (o *Order) LinesBySeller() map[uuid.UUID][]Item {
	out := make(map[uuid.UUID][]Item)
	for _, it := range o.Items {
		out[it.SellerID] = append(out[it.SellerID], it)
	}
	return out
}
