package postgres

import "github.com/MamaFati/farmDirect/internal/domain/repository"

var (
	_ repository.Transactor           = (*DB)(nil)
	_ repository.ProductRepository    = (*ProductRepository)(nil)
	_ repository.CategoryRepository   = (*CategoryRepository)(nil)
	_ repository.CartRepository       = (*CartRepository)(nil)
	_ repository.OrderRepository      = (*OrderRepository)(nil)
	_ repository.PermissionRepository = (*PermissionRepository)(nil)
)
