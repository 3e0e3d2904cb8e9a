package order

import (
	"time"

	"github.com/google/uuid"
)

// Placed is published after an order commits.
type Placed struct {
	OrderID     uuid.UUID
	BuyerID     uuid.UUID
	TotalAmount string
	PlacedAt    time.Time
	Lines       []PlacedLine
}

type PlacedLine struct {
	ProductID   string
	ProductName string
	SellerID    uuid.UUID
	Quantity    int
	PriceAtTime string
}

func (o *Order) PlacedEvent() Placed {
	ev := Placed{
		OrderID:     o.ID,
		BuyerID:     o.BuyerID,
		TotalAmount: o.TotalAmount.String(),
		PlacedAt:    o.CreatedAt,
		Lines:       make([]PlacedLine, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		line := PlacedLine{
			ProductName: it.ProductName,
			SellerID:    it.SellerID,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime.String(),
		}
		if it.ProductID != nil {
			line.ProductID = it.ProductID.String()
		}
		ev.Lines = append(ev.Lines, line)
	}
	return ev
}
