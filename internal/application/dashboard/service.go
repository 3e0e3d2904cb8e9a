// Package dashboard assembles the landing view for a principal from the
// catalog and order services.
package dashboard

import (
	"context"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
)

// RecentSellerOrders is how many orders a seller's dashboard shows.
const RecentSellerOrders = 5

type ProductLister interface {
	ListProducts(ctx context.Context, p principal.Principal, f catalog.Filter) ([]*catalog.Product, error)
}

type OrderLister interface {
	RecentOrders(ctx context.Context, p principal.Principal, limit int) ([]*order.Order, error)
}

type View struct {
	Role     principal.Role
	Products []*catalog.Product
	Orders   []*order.Order
}

type Service struct {
	products ProductLister
	orders   OrderLister
}

func NewService(products ProductLister, orders OrderLister) *Service {
	return &Service{products: products, orders: orders}
}

// Build returns a seller's own products and latest orders, or a buyer's
// full order history.
func (s *Service) Build(ctx context.Context, p principal.Principal) (*View, error) {
	view := &View{Role: p.Role}
	switch p.Role {
	case principal.RoleSeller:
		products, err := s.products.ListProducts(ctx, p, catalog.Filter{})
		if err != nil {
			return nil, err
		}
		orders, err := s.orders.RecentOrders(ctx, p, RecentSellerOrders)
		if err != nil {
			return nil, err
		}
		view.Products, view.Orders = products, orders
	case principal.RoleBuyer:
		orders, err := s.orders.RecentOrders(ctx, p, 0)
		if err != nil {
			return nil, err
		}
		view.Orders = orders
	default:
		return nil, apperror.Forbidden("role %s has no dashboard", p.Role)
	}
	return view, nil
}
