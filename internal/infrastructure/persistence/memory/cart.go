package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/cart"
)

type CartRepository struct {
	s *Store
}

func (r *CartRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error) {
	var out *cart.Cart
	r.s.read(func(st *state) {
		out = st.loadCart(buyerID)
	})
	return out, nil
}

func (r *CartRepository) GetOrCreate(ctx context.Context, candidate *cart.Cart) (*cart.Cart, error) {
	var out *cart.Cart
	r.s.write(func(st *state) {
		if _, ok := st.carts[candidate.BuyerID]; !ok {
			c := *candidate
			c.Items = nil
			st.carts[candidate.BuyerID] = cartRow{c: c, seq: st.next()}
		}
		out = st.loadCart(candidate.BuyerID)
	})
	return out, nil
}

// LockByBuyer relies on transactions being serialized by the store.
func (r *CartRepository) LockByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error) {
	return r.FindByBuyer(ctx, buyerID)
}

func (r *CartRepository) AddItem(ctx context.Context, cartID uuid.UUID, item cart.Item) error {
	var err error
	r.s.write(func(st *state) {
		if _, ok := st.products[item.ProductID]; !ok {
			err = apperror.NotFound("product %s", item.ProductID)
			return
		}
		item.Product = nil
		st.items = append(st.items, itemRow{cartID: cartID, item: item, seq: st.next()})
	})
	return err
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	removed := false
	r.s.write(func(st *state) {
		for i, row := range st.items {
			if row.cartID == cartID && row.item.ID == itemID {
				st.items = append(st.items[:i:i], st.items[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed, nil
}

func (r *CartRepository) RemoveItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	drop := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = struct{}{}
	}
	r.s.write(func(st *state) {
		kept := st.items[:0:0]
		for _, row := range st.items {
			if _, ok := drop[row.item.ID]; ok && row.cartID == cartID {
				continue
			}
			kept = append(kept, row)
		}
		st.items = kept
	})
	return nil
}

func (st *state) loadCart(buyerID uuid.UUID) *cart.Cart {
	row, ok := st.carts[buyerID]
	if !ok {
		return nil
	}
	c := row.c
	c.Items = nil

	var rows []itemRow
	for _, it := range st.items {
		if it.cartID == c.ID {
			rows = append(rows, it)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	for _, it := range rows {
		item := it.item
		if prow, ok := st.products[item.ProductID]; ok {
			p := copyProduct(&prow.p)
			item.Product = &p
		}
		c.Items = append(c.Items, item)
	}
	return &c
}
