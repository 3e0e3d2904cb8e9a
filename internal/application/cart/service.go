package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/application/permission"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	domain "github.com/MamaFati/farmDirect/internal/domain/cart"
	perm "github.com/MamaFati/farmDirect/internal/domain/permission"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
)

type Service struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	perms    *permission.Store
	now      func() time.Time
}

func NewService(carts repository.CartRepository, products repository.ProductRepository, perms *permission.Store) *Service {
	return &Service{
		carts:    carts,
		products: products,
		perms:    perms,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddItem appends a new line to the buyer's cart, creating the cart on first
// use. Adding a product already in the cart adds a second line.
func (s *Service) AddItem(ctx context.Context, p principal.Principal, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if err := permission.RequireRole(p, principal.RoleBuyer); err != nil {
		return nil, err
	}

	v := apperror.NewValidationError()
	domain.CheckQuantity(v, quantity)
	if err := s.checkProduct(ctx, p, productID, v); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	c, err := s.carts.GetOrCreate(ctx, domain.New(uuid.New(), p.ID, now))
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	item, err := domain.NewItem(uuid.New(), productID, quantity, now)
	if err != nil {
		return nil, err
	}
	if err := s.carts.AddItem(ctx, c.ID, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return s.load(ctx, p.ID)
}

// GetCart returns the cart with live product data and subtotal.
func (s *Service) GetCart(ctx context.Context, p principal.Principal) (*domain.Cart, error) {
	if err := permission.RequireRole(p, principal.RoleBuyer); err != nil {
		return nil, err
	}
	return s.load(ctx, p.ID)
}

// RemoveItem deletes one line. Removing a line that is not in the cart
// leaves the cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, p principal.Principal, itemID uuid.UUID) (*domain.Cart, error) {
	if err := permission.RequireRole(p, principal.RoleBuyer); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	removed, err := s.carts.RemoveItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("remove cart item %s: %w", itemID, err)
	}
	if !removed {
		return c, nil
	}
	return s.load(ctx, p.ID)
}

func (s *Service) load(ctx context.Context, buyerID uuid.UUID) (*domain.Cart, error) {
	c, err := s.carts.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		return nil, apperror.NotFound("cart for buyer %s", buyerID)
	}
	return c, nil
}

func (s *Service) checkProduct(ctx context.Context, p principal.Principal, productID uuid.UUID, v *apperror.ValidationError) error {
	if productID == uuid.Nil {
		v.Add("product_id", "this field is required")
		return nil
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product %s: %w", productID, err)
	}
	if product == nil {
		v.Add("product_id", "unknown product")
		return nil
	}
	ok, err := s.perms.Authorize(ctx, p, perm.Product(productID), perm.View)
	if err != nil {
		return err
	}
	if !ok {
		v.Add("product_id", "unknown product")
	}
	return nil
}
