package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

const productColumns = `id, name, description, price::text, category_id, quantity_available,
	harvest_date, expiry_date, seller_id, created_at`

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	const query = `
		INSERT INTO products (id, name, description, price, category_id, quantity_available,
			harvest_date, expiry_date, seller_id, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.q(ctx).Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price.String(),
		p.CategoryID,
		p.QuantityAvailable,
		p.HarvestDate,
		p.ExpiryDate,
		p.SellerID,
		p.CreatedAt,
	)
	if err != nil {
		return mapErr(err, "insert product")
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	const query = `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4::numeric,
			category_id = $5,
			quantity_available = $6,
			harvest_date = $7,
			expiry_date = $8
		WHERE id = $1;
	`
	tag, err := r.db.q(ctx).Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price.String(),
		p.CategoryID,
		p.QuantityAvailable,
		p.HarvestDate,
		p.ExpiryDate,
	)
	if err != nil {
		return mapErr(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("product %s", p.ID)
	}
	return nil
}

// Delete relies on the foreign keys: cart lines cascade, order lines keep
// their snapshot with product_id set to NULL.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.q(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	row := r.db.q(ctx).QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1;`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	if f.RestrictIDs && len(f.IDs) == 0 {
		return []*catalog.Product{}, nil
	}
	query, args := buildProductQuery(f)
	rows, err := r.db.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*catalog.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// buildProductQuery renders f as a parameterised SELECT. Name matching is a
// case-insensitive substring match with LIKE wildcards escaped.
func buildProductQuery(f catalog.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.NameContains != "" {
		where = append(where, "name ILIKE "+arg("%"+escapeLike(f.NameContains)+"%"))
	}
	if f.CategoryID != nil {
		where = append(where, "category_id = "+arg(*f.CategoryID))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(f.MinPrice.String())+"::numeric")
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(f.MaxPrice.String())+"::numeric")
	}
	if f.RestrictIDs {
		where = append(where, "id = ANY("+arg(uuidStrings(f.IDs))+"::uuid[])")
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns + " FROM products")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id;")
	return b.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var (
		p     catalog.Product
		price string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&price,
		&p.CategoryID,
		&p.QuantityAvailable,
		&p.HarvestDate,
		&p.ExpiryDate,
		&p.SellerID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Price, err = money.Parse(price); err != nil {
		return nil, err
	}
	return &p, nil
}
