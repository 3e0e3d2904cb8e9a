package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/application/permission"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	domain "github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// Publisher announces committed orders.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev domain.Placed) error
}

// IdempotencyStore remembers checkout keys for a while.
type IdempotencyStore interface {
	// Reserve claims key and reports false if it was already claimed.
	Reserve(ctx context.Context, key string) (bool, error)
	// Complete records the order created under key.
	Complete(ctx context.Context, key string, orderID uuid.UUID) error
	// Release frees key after a failed checkout so it can be retried.
	Release(ctx context.Context, key string) error
}

type Service struct {
	tx        repository.Transactor
	carts     repository.CartRepository
	orders    repository.OrderRepository
	publisher Publisher
	idem      IdempotencyStore
	log       logger.Logger
	now       func() time.Time
}

// NewService wires checkout and order queries. publisher and idem may be nil
// to run without events or idempotency keys.
func NewService(
	tx repository.Transactor,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	publisher Publisher,
	idem IdempotencyStore,
	log logger.Logger,
) *Service {
	return &Service{
		tx:        tx,
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		idem:      idem,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder turns the buyer's cart into a pending order. The cart row is
// locked for the whole transaction; the order, its lines and the removal of
// exactly those lines from the cart commit together or not at all.
func (s *Service) PlaceOrder(ctx context.Context, p principal.Principal, idempotencyKey string) (*domain.Order, error) {
	if err := permission.RequireRole(p, principal.RoleBuyer); err != nil {
		return nil, err
	}

	key := ""
	if idempotencyKey != "" && s.idem != nil {
		key = p.ID.String() + ":" + idempotencyKey
		ok, err := s.idem.Reserve(ctx, key)
		if err != nil {
			return nil, apperror.Unavailable("reserve idempotency key", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: idempotency key %q already used", apperror.ErrConflict, idempotencyKey)
		}
	}

	o, err := s.placeOrder(ctx, p)
	if key != "" {
		s.settleKey(ctx, key, o, err)
	}
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("order placed",
		logger.UUID("order_id", o.ID),
		logger.Int("items", len(o.Items)),
		logger.String("total", o.TotalAmount.String()),
	)
	s.publish(ctx, o)
	return o, nil
}

func (s *Service) placeOrder(ctx context.Context, p principal.Principal) (*domain.Order, error) {
	c, err := s.carts.FindByBuyer(ctx, p.ID)
	if err != nil {
		return nil, apperror.Unavailable("find cart", err)
	}
	if c == nil {
		return nil, apperror.NotFound("cart for buyer %s", p.ID)
	}
	if c.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	var placed *domain.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.carts.LockByBuyer(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("lock cart: %w", err)
		}
		if locked == nil {
			return apperror.NotFound("cart for buyer %s", p.ID)
		}
		// a concurrent checkout may have emptied it while we waited
		if locked.IsEmpty() {
			return apperror.ErrEmptyCart
		}

		o, err := domain.NewOrder(uuid.New(), p.ID, s.now())
		if err != nil {
			return err
		}
		ordered := make([]uuid.UUID, 0, len(locked.Items))
		for _, it := range locked.Items {
			if it.Product == nil {
				return apperror.NotFound("product %s", it.ProductID)
			}
			if err := o.AddLine(uuid.New(), it.Product, it.Quantity); err != nil {
				return lineError(err)
			}
			ordered = append(ordered, it.ID)
		}
		if err := s.orders.Create(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := s.carts.RemoveItems(ctx, locked.ID, ordered); err != nil {
			return fmt.Errorf("remove ordered lines: %w", err)
		}
		placed = o
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, apperror.Unavailable("place order", err)
	}
	return placed, nil
}

func (s *Service) settleKey(ctx context.Context, key string, o *domain.Order, placeErr error) {
	var err error
	if placeErr != nil {
		err = s.idem.Release(ctx, key)
	} else {
		err = s.idem.Complete(ctx, key, o.ID)
	}
	if err != nil {
		s.log.WithContext(ctx).Warn("settle idempotency key", logger.String("key", key), logger.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, o *domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPlaced(ctx, o.PlacedEvent()); err != nil {
		s.log.WithContext(ctx).Error("publish order placed", logger.UUID("order_id", o.ID), logger.Error(err))
	}
}

// ListOrders returns the buyer's own orders, or for a seller every order
// containing at least one of their products. Newest first.
func (s *Service) ListOrders(ctx context.Context, p principal.Principal) ([]*domain.Order, error) {
	return s.RecentOrders(ctx, p, 0)
}

// RecentOrders is ListOrders capped at limit entries; limit <= 0 means all.
func (s *Service) RecentOrders(ctx context.Context, p principal.Principal, limit int) ([]*domain.Order, error) {
	var (
		orders []*domain.Order
		err    error
	)
	switch p.Role {
	case principal.RoleBuyer:
		orders, err = s.orders.ListByBuyer(ctx, p.ID, limit)
	case principal.RoleSeller:
		orders, err = s.orders.ListBySeller(ctx, p.ID, limit)
	default:
		return nil, apperror.Forbidden("role %s cannot list orders", p.Role)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder applies the ListOrders visibility rule to a single order.
func (s *Service) GetOrder(ctx context.Context, p principal.Principal, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	if o == nil || !visible(p, o) {
		return nil, apperror.NotFound("order %s", id)
	}
	return o, nil
}

func visible(p principal.Principal, o *domain.Order) bool {
	switch p.Role {
	case principal.RoleBuyer:
		return o.BuyerID == p.ID
	case principal.RoleSeller:
		return o.HasSeller(p.ID)
	default:
		return false
	}
}

// lineError reports a line the order cannot take as a client error.
func lineError(err error) error {
	v := apperror.NewValidationError()
	switch {
	case errors.Is(err, domain.ErrTotalTooLarge):
		v.Add("cart", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		v.Add("quantity", err.Error())
	default:
		return err
	}
	return v
}

func isDomainError(err error) bool {
	var verr *apperror.ValidationError
	return errors.Is(err, apperror.ErrEmptyCart) ||
		errors.Is(err, apperror.ErrNotFound) ||
		errors.Is(err, apperror.ErrForbidden) ||
		errors.As(err, &verr)
}
