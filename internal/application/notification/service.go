// Package notification tells sellers about new orders for their products.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MamaFati/farmDirect/internal/domain/order"
)

// SellerNotice is the part of one order that concerns one seller.
type SellerNotice struct {
	OrderID  uuid.UUID
	BuyerID  uuid.UUID
	SellerID uuid.UUID
	Lines    []order.PlacedLine
	Subtotal string
}

type Notifier interface {
	NotifySeller(ctx context.Context, n SellerNotice) error
}

type Service struct {
	notifier Notifier
}

func NewService(notifier Notifier) *Service {
	return &Service{notifier: notifier}
}

// HandleOrderPlaced sends one notice per seller in the order, in the order
// sellers first appear. It stops at the first failure so the event can be
// redelivered.
func (s *Service) HandleOrderPlaced(ctx context.Context, ev order.Placed) (int, error) {
	notices, err := splitBySeller(ev)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, n := range notices {
		if err := s.notifier.NotifySeller(ctx, n); err != nil {
			return sent, fmt.Errorf("notify seller %s of order %s: %w", n.SellerID, ev.OrderID, err)
		}
		sent++
	}
	return sent, nil
}

func splitBySeller(ev order.Placed) ([]SellerNotice, error) {
	var (
		notices []SellerNotice
		index   = make(map[uuid.UUID]int)
		totals  = make(map[uuid.UUID]decimal.Decimal)
	)
	for _, line := range ev.Lines {
		price, err := decimal.NewFromString(line.PriceAtTime)
		if err != nil {
			return nil, fmt.Errorf("order %s: bad price %q: %w", ev.OrderID, line.PriceAtTime, err)
		}
		i, ok := index[line.SellerID]
		if !ok {
			i = len(notices)
			index[line.SellerID] = i
			notices = append(notices, SellerNotice{OrderID: ev.OrderID, BuyerID: ev.BuyerID, SellerID: line.SellerID})
		}
		notices[i].Lines = append(notices[i].Lines, line)
		totals[line.SellerID] = totals[line.SellerID].Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	for i := range notices {
		notices[i].Subtotal = totals[notices[i].SellerID].StringFixed(2)
	}
	return notices, nil
}
