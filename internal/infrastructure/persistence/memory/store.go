// Package memory is a process-local implementation of the repository ports
// for STORAGE=memory and for tests. Transactions are serialized and roll back
// by restoring a snapshot; writes made outside a transaction while one is
// running can be lost on rollback, which is acceptable for its purpose.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/permission"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
)

type productRow struct {
	p   catalog.Product
	seq int64
}

type cartRow struct {
	c   cart.Cart // Items unused; lines live in items
	seq int64
}

type itemRow struct {
	cartID uuid.UUID
	item   cart.Item
	seq    int64
}

type orderRow struct {
	o   order.Order
	seq int64
}

type state struct {
	seq        int64
	categories map[uuid.UUID]catalog.Category
	products   map[uuid.UUID]productRow
	grants     map[permission.Grant]struct{}
	carts      map[uuid.UUID]cartRow // keyed by buyer
	items      []itemRow
	orders     []orderRow
}

func newState() *state {
	return &state{
		categories: make(map[uuid.UUID]catalog.Category),
		products:   make(map[uuid.UUID]productRow),
		grants:     make(map[permission.Grant]struct{}),
		carts:      make(map[uuid.UUID]cartRow),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// clone copies everything a rollback has to restore. Order item slices are
// replaced, never written in place, so sharing them is safe.
func (s *state) clone() *state {
	c := &state{
		seq:        s.seq,
		categories: make(map[uuid.UUID]catalog.Category, len(s.categories)),
		products:   make(map[uuid.UUID]productRow, len(s.products)),
		grants:     make(map[permission.Grant]struct{}, len(s.grants)),
		carts:      make(map[uuid.UUID]cartRow, len(s.carts)),
		items:      append([]itemRow(nil), s.items...),
		orders:     append([]orderRow(nil), s.orders...),
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k := range s.grants {
		c.grants[k] = struct{}{}
	}
	for k, v := range s.carts {
		c.carts[k] = v
	}
	return c
}

// Store holds all tables. Obtain the repositories with its accessor methods.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Carts() *CartRepository { return &CartRepository{s: s} }
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }
func (s *Store) Permissions() *PermissionRepository { return &PermissionRepository{s: s} }

var (
	_ repository.Transactor           = (*Store)(nil)
	_ repository.ProductRepository    = (*ProductRepository)(nil)
	_ repository.CategoryRepository   = (*CategoryRepository)(nil)
	_ repository.CartRepository       = (*CartRepository)(nil)
	_ repository.OrderRepository      = (*OrderRepository)(nil)
	_ repository.PermissionRepository = (*PermissionRepository)(nil)
)
