package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/order"
)

type orderItem = order.Item

type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	var err error
	r.s.write(func(st *state) {
		for _, row := range st.orders {
			if row.o.ID == o.ID {
				err = fmt.Errorf("%w: order %s exists", apperror.ErrConflict, o.ID)
				return
			}
		}
		st.orders = append(st.orders, orderRow{o: copyOrder(o), seq: st.next()})
	})
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var out *order.Order
	r.s.read(func(st *state) {
		for _, row := range st.orders {
			if row.o.ID == id {
				o := copyOrder(&row.o)
				out = &o
				return
			}
		}
	})
	return out, nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.list(limit, func(o *order.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.list(limit, func(o *order.Order) bool { return o.HasSeller(sellerID) }), nil
}

func (r *OrderRepository) list(limit int, keep func(o *order.Order) bool) []*order.Order {
	var rows []orderRow
	r.s.read(func(st *state) {
		for _, row := range st.orders {
			if keep(&row.o) {
				rows = append(rows, row)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].o.CreatedAt.Equal(rows[j].o.CreatedAt) {
			return rows[i].o.CreatedAt.After(rows[j].o.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o := copyOrder(&row.o)
		out = append(out, &o)
	}
	return out
}

func referencesProduct(o order.Order, productID uuid.UUID) bool {
	for _, it := range o.Items {
		if it.ProductID != nil && *it.ProductID == productID {
			return true
		}
	}
	return false
}

func copyOrder(o *order.Order) order.Order {
	c := *o
	c.Items = make([]order.Item, len(o.Items))
	for i, it := range o.Items {
		if it.ProductID != nil {
			id := *it.ProductID
			it.ProductID = &id
		}
		c.Items[i] = it
	}
	return c
}
