package router

import (
	"github.com/gin-gonic/gin"

	"github.com/MamaFati/farmDirect/internal/interfaces/http/handler"
	"github.com/MamaFati/farmDirect/internal/interfaces/http/middleware"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type Handlers struct {
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Cart       *handler.CartHandler
	Orders     *handler.OrderHandler
	Dashboard  *handler.DashboardHandler
	Health     *handler.HealthHandler
}

// RegisterRoutes mounts /healthz publicly and everything under /api/v1
// behind bearer authentication.
func RegisterRoutes(r *gin.Engine, h Handlers, verifier middleware.TokenVerifier, log logger.Logger) {
	r.GET("/healthz", h.Health.Healthz)

	api := r.Group("/api/v1", middleware.Authenticate(verifier, log))
	{
		api.GET("/products", h.Products.List)
		api.POST("/products", h.Products.Create)
		api.GET("/products/:id", h.Products.Get)
		api.PUT("/products/:id", h.Products.Replace)
		api.PATCH("/products/:id", h.Products.Update)
		api.DELETE("/products/:id", h.Products.Delete)

		api.GET("/categories", h.Categories.List)
		api.GET("/categories/:id", h.Categories.Get)

		api.GET("/cart", h.Cart.Get)
		api.POST("/cart/items", h.Cart.AddItem)
		api.DELETE("/cart/items/:id", h.Cart.RemoveItem)

		api.POST("/orders", h.Orders.PlaceOrder)
		api.GET("/orders", h.Orders.List)
		api.GET("/orders/:id", h.Orders.Get)

		api.GET("/dashboard", h.Dashboard.Get)
	}
}
