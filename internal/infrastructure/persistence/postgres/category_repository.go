package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MamaFati/farmDirect/internal/domain/catalog"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	_, err := r.db.q(ctx).Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2);`, c.ID, c.Name)
	if err != nil {
		return mapErr(err, "insert category "+c.Name)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.q(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	return err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var c catalog.Category
	err := r.db.q(ctx).QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1;`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := r.db.q(ctx).Query(ctx, `SELECT id, name FROM categories ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*catalog.Category, 0)
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
