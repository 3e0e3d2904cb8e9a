package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	var err error
	r.s.write(func(st *state) {
		if _, ok := st.products[p.ID]; ok {
			err = fmt.Errorf("%w: product %s exists", apperror.ErrConflict, p.ID)
			return
		}
		st.products[p.ID] = productRow{p: copyProduct(p), seq: st.next()}
	})
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	var err error
	r.s.write(func(st *state) {
		row, ok := st.products[p.ID]
		if !ok {
			err = apperror.NotFound("product %s", p.ID)
			return
		}
		row.p = copyProduct(p)
		st.products[p.ID] = row
	})
	return err
}

// Delete removes the product with its cart lines and detaches order lines.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.write(func(st *state) {
		delete(st.products, id)

		kept := st.items[:0:0]
		for _, row := range st.items {
			if row.item.ProductID != id {
				kept = append(kept, row)
			}
		}
		st.items = kept

		for i, row := range st.orders {
			if !referencesProduct(row.o, id) {
				continue
			}
			items := make([]orderItem, len(row.o.Items))
			copy(items, row.o.Items)
			for j := range items {
				if items[j].ProductID != nil && *items[j].ProductID == id {
					items[j].ProductID = nil
				}
			}
			st.orders[i].o.Items = items
		}
	})
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var out *catalog.Product
	r.s.read(func(st *state) {
		if row, ok := st.products[id]; ok {
			p := copyProduct(&row.p)
			out = &p
		}
	})
	return out, nil
}

// List returns matches newest first.
func (r *ProductRepository) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	var rows []productRow
	r.s.read(func(st *state) {
		for _, row := range st.products {
			if f.Matches(&row.p) {
				rows = append(rows, row)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]*catalog.Product, 0, len(rows))
	for _, row := range rows {
		p := copyProduct(&row.p)
		out = append(out, &p)
	}
	return out, nil
}

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	var err error
	r.s.write(func(st *state) {
		for _, existing := range st.categories {
			if existing.Name == c.Name {
				err = fmt.Errorf("%w: category %q exists", apperror.ErrConflict, c.Name)
				return
			}
		}
		st.categories[c.ID] = *c
	})
	return err
}

// Delete clears the category on its products.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.write(func(st *state) {
		delete(st.categories, id)
		for pid, row := range st.products {
			if row.p.CategoryID != nil && *row.p.CategoryID == id {
				row.p.CategoryID = nil
				st.products[pid] = row
			}
		}
	})
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var out *catalog.Category
	r.s.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// List orders by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	var out []*catalog.Category
	r.s.read(func(st *state) {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func copyProduct(p *catalog.Product) catalog.Product {
	c := *p
	if p.CategoryID != nil {
		id := *p.CategoryID
		c.CategoryID = &id
	}
	return c
}
