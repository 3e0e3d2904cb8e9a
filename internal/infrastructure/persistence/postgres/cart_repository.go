package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

type CartRepository struct {
	db *DB
}

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error) {
	return r.load(ctx, buyerID, false)
}

func (r *CartRepository) GetOrCreate(ctx context.Context, candidate *cart.Cart) (*cart.Cart, error) {
	const query = `
		INSERT INTO carts (id, buyer_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (buyer_id) DO NOTHING;
	`
	if _, err := r.db.q(ctx).Exec(ctx, query, candidate.ID, candidate.BuyerID, candidate.CreatedAt); err != nil {
		return nil, err
	}
	c, err := r.load(ctx, candidate.BuyerID, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cart for buyer %s vanished after insert", candidate.BuyerID)
	}
	return c, nil
}

// LockByBuyer must run inside DB.WithinTx; outside one the lock is released
// as soon as the statement ends.
func (r *CartRepository) LockByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error) {
	return r.load(ctx, buyerID, true)
}

func (r *CartRepository) AddItem(ctx context.Context, cartID uuid.UUID, item cart.Item) error {
	const query = `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.q(ctx).Exec(ctx, query, item.ID, cartID, item.ProductID, item.Quantity, item.AddedAt)
	if err != nil {
		return mapErr(err, "insert cart item")
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	tag, err := r.db.q(ctx).Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2;`, itemID, cartID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CartRepository) RemoveItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	_, err := r.db.q(ctx).Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2::uuid[]);`, cartID, ids)
	return err
}

func (r *CartRepository) load(ctx context.Context, buyerID uuid.UUID, forUpdate bool) (*cart.Cart, error) {
	query := `SELECT id, buyer_id, created_at FROM carts WHERE buyer_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	q := r.db.q(ctx)
	var c cart.Cart
	err := q.QueryRow(ctx, query, buyerID).Scan(&c.ID, &c.BuyerID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	const itemsQuery = `
		SELECT ci.id, ci.quantity, ci.added_at,
			p.id, p.name, p.description, p.price::text, p.category_id, p.quantity_available,
			p.harvest_date, p.expiry_date, p.seller_id, p.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.seq;
	`
	rows, err := q.Query(ctx, itemsQuery, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it    cart.Item
			p     catalog.Product
			price string
		)
		err := rows.Scan(
			&it.ID, &it.Quantity, &it.AddedAt,
			&p.ID, &p.Name, &p.Description, &price, &p.CategoryID, &p.QuantityAvailable,
			&p.HarvestDate, &p.ExpiryDate, &p.SellerID, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if p.Price, err = money.Parse(price); err != nil {
			return nil, err
		}
		it.ProductID = p.ID
		it.Product = &p
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}
