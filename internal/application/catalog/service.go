package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/application/permission"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	domain "github.com/MamaFati/farmDirect/internal/domain/catalog"
	perm "github.com/MamaFati/farmDirect/internal/domain/permission"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
)

type Service struct {
	tx         repository.Transactor
	products   repository.ProductRepository
	categories repository.CategoryRepository
	perms      *permission.Store
	now        func() time.Time
}

func NewService(
	tx repository.Transactor,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	perms *permission.Store,
) *Service {
	return &Service{
		tx:         tx,
		products:   products,
		categories: categories,
		perms:      perms,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateProduct stores a new product owned by the calling seller and grants
// the seller view, change and delete on it in the same transaction.
func (s *Service) CreateProduct(ctx context.Context, p principal.Principal, in domain.ProductInput) (*domain.Product, error) {
	if err := permission.RequireRole(p, principal.RoleSeller); err != nil {
		return nil, err
	}

	v := apperror.NewValidationError()
	if err := s.checkCategory(ctx, in.CategoryID, v); err != nil {
		return nil, err
	}
	product := domain.NewProduct(uuid.New(), p.ID, in, s.now(), v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.products.Create(ctx, product); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return s.perms.GrantOwner(ctx, p.ID, perm.Product(product.ID))
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies the supplied fields only.
func (s *Service) UpdateProduct(ctx context.Context, p principal.Principal, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	return s.update(ctx, p, id, in, false)
}

// ReplaceProduct is UpdateProduct with every required field mandatory.
func (s *Service) ReplaceProduct(ctx context.Context, p principal.Principal, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	return s.update(ctx, p, id, in, true)
}

func (s *Service) update(ctx context.Context, p principal.Principal, id uuid.UUID, in domain.ProductInput, replace bool) (*domain.Product, error) {
	product, err := s.authorizedProduct(ctx, p, id, perm.Change)
	if err != nil {
		return nil, err
	}

	v := apperror.NewValidationError()
	if err := s.checkCategory(ctx, in.CategoryID, v); err != nil {
		return nil, err
	}
	if replace {
		product.Replace(in, v)
	} else {
		product.Apply(in, v)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return product, nil
}

// DeleteProduct removes the product and its grants. Cart lines for it go
// with it; order lines keep their snapshot.
func (s *Service) DeleteProduct(ctx context.Context, p principal.Principal, id uuid.UUID) error {
	if _, err := s.authorizedProduct(ctx, p, id, perm.Delete); err != nil {
		return err
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.products.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return s.perms.Forget(ctx, perm.Product(id))
	})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// GetProduct hides products p may not view behind NotFound.
func (s *Service) GetProduct(ctx context.Context, p principal.Principal, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	if product == nil {
		return nil, apperror.NotFound("product %s", id)
	}
	ok, err := s.perms.Authorize(ctx, p, perm.Product(id), perm.View)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("product %s", id)
	}
	return product, nil
}

// ListProducts returns the products p may view that match f.
func (s *Service) ListProducts(ctx context.Context, p principal.Principal, f domain.Filter) ([]*domain.Product, error) {
	ids, all, err := s.perms.Viewable(ctx, p, perm.ObjectProduct)
	if err != nil {
		return nil, err
	}
	if !all {
		f.RestrictIDs = true
		f.IDs = ids
	}
	products, err := s.products.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category %s: %w", id, err)
	}
	if c == nil {
		return nil, apperror.NotFound("category %s", id)
	}
	return c, nil
}

// CreateCategory is administrative; it is not reachable over HTTP.
func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	c, err := domain.NewCategory(uuid.New(), name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category %q: %w", c.Name, err)
	}
	return c, nil
}

// DeleteCategory detaches its products (their category becomes empty).
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

// SeedCategories creates the default categories that do not exist yet and
// returns how many were created.
func (s *Service) SeedCategories(ctx context.Context) (int, error) {
	created := 0
	for _, name := range domain.DefaultCategories {
		_, err := s.CreateCategory(ctx, name)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperror.ErrConflict):
		default:
			return created, err
		}
	}
	return created, nil
}

func (s *Service) authorizedProduct(ctx context.Context, p principal.Principal, id uuid.UUID, c perm.Capability) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	if product == nil {
		return nil, apperror.NotFound("product %s", id)
	}
	ok, err := s.perms.Authorize(ctx, p, perm.Product(id), c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden("%s product %s", c, id)
	}
	return product, nil
}

func (s *Service) checkCategory(ctx context.Context, id *uuid.UUID, v *apperror.ValidationError) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	c, err := s.categories.FindByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("find category %s: %w", *id, err)
	}
	if c == nil {
		v.Add("category", "unknown category")
	}
	return nil
}
