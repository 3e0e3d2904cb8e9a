// Package repository declares the storage ports. Finders return (nil, nil)
// when the row does not exist; every other failure is a storage fault.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/permission"
)

// Transactor runs fn in one transaction. Repository calls made with the ctx
// passed to fn join it; the transaction commits only if fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error)
}

type CategoryRepository interface {
	// Create fails with apperror.ErrConflict when the name is taken.
	Create(ctx context.Context, c *catalog.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	List(ctx context.Context) ([]*catalog.Category, error)
}

type CartRepository interface {
	// FindByBuyer loads the cart with its items and their live products.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error)
	// GetOrCreate stores candidate unless the buyer already has a cart, and
	// returns whichever cart the buyer ends up with.
	GetOrCreate(ctx context.Context, candidate *cart.Cart) (*cart.Cart, error)
	// LockByBuyer is FindByBuyer holding a row lock until the transaction
	// in ctx ends.
	LockByBuyer(ctx context.Context, buyerID uuid.UUID) (*cart.Cart, error)
	AddItem(ctx context.Context, cartID uuid.UUID, item cart.Item) error
	// RemoveItem reports false when itemID is not a line of cartID.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	// RemoveItems deletes exactly the listed lines of cartID; lines added
	// since the cart was read are left in place.
	RemoveItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// ListByBuyer and ListBySeller return newest first. limit <= 0 means all.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*order.Order, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*order.Order, error)
}

type PermissionRepository interface {
	Grant(ctx context.Context, grants ...permission.Grant) error
	HasGrant(ctx context.Context, g permission.Grant) (bool, error)
	ObjectIDs(ctx context.Context, principalID uuid.UUID, objType permission.ObjectType, c permission.Capability) ([]uuid.UUID, error)
	DeleteObject(ctx context.Context, obj permission.ObjectRef) error
}
