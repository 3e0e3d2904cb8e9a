package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/money"
	domain "github.com/MamaFati/farmDirect/internal/domain/order"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create writes the order and its lines atomically, joining the caller's
// transaction when there is one.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		const orderQuery = `
			INSERT INTO orders (id, buyer_id, status, total_amount, created_at)
			VALUES ($1, $2, $3, $4::numeric, $5);
		`
		q := r.db.q(ctx)
		if _, err := q.Exec(ctx, orderQuery, o.ID, o.BuyerID, string(o.Status), o.TotalAmount.String(), o.CreatedAt); err != nil {
			return mapErr(err, "insert order")
		}

		const itemQuery = `
			INSERT INTO order_items (id, order_id, line_no, product_id, product_name, seller_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric);
		`
		for i, it := range o.Items {
			_, err := q.Exec(ctx, itemQuery,
				it.ID, o.ID, i+1, it.ProductID, it.ProductName, it.SellerID, it.Quantity, it.PriceAtTime.String(),
			)
			if err != nil {
				return mapErr(err, "insert order item")
			}
		}
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	orders, err := r.query(ctx, `WHERE o.id = $1`, 0, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*domain.Order, error) {
	return r.query(ctx, `WHERE o.buyer_id = $1`, limit, buyerID)
}

// ListBySeller matches on the seller snapshot so deleted products still count.
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*domain.Order, error) {
	return r.query(ctx, `WHERE EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id AND i.seller_id = $1)`, limit, sellerID)
}

// query loads matching orders newest first, then all their lines in one
// round trip. where may reference $1 only; the limit is bound as $2.
func (r *OrderRepository) query(ctx context.Context, where string, limit int, arg any) ([]*domain.Order, error) {
	if limit < 0 {
		limit = 0
	}
	q := r.db.q(ctx)
	query := `
		SELECT o.id, o.buyer_id, o.status, o.total_amount::text, o.created_at
		FROM orders o
		` + where + `
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT NULLIF($2::int, 0);
	`
	rows, err := q.Query(ctx, query, arg, limit)
	if err != nil {
		return nil, err
	}

	var (
		orders []*domain.Order
		byID   = make(map[uuid.UUID]*domain.Order)
	)
	for rows.Next() {
		var (
			o      domain.Order
			status string
			total  string
		)
		if err := rows.Scan(&o.ID, &o.BuyerID, &status, &total, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if o.Status, err = domain.ParseStatus(status); err != nil {
			rows.Close()
			return nil, err
		}
		if o.TotalAmount, err = money.Parse(total); err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []*domain.Order{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	const itemsQuery = `
		SELECT order_id, id, product_id, product_name, seller_id, quantity, price_at_time::text
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, line_no;
	`
	itemRows, err := q.Query(ctx, itemsQuery, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID uuid.UUID
			it      domain.Item
			price   string
		)
		err := itemRows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.SellerID, &it.Quantity, &price)
		if err != nil {
			return nil, err
		}
		if it.PriceAtTime, err = money.Parse(price); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return orders, itemRows.Err()
}
