package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/MamaFati/farmDirect/internal/application/dashboard"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type DashboardHandler struct {
	responder
	svc *app.Service
}

func NewDashboardHandler(svc *app.Service, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{responder: responder{log: log}, svc: svc}
}

type dashboardResponse struct {
	Role     string            `json:"role"`
	Products []productResponse `json:"products,omitempty"`
	Orders   []orderResponse   `json:"orders"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	view, err := h.svc.Build(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := dashboardResponse{Role: view.Role.String(), Orders: toOrders(view.Orders)}
	if view.Role == principal.RoleSeller {
		resp.Products = toProducts(view.Products)
	}
	c.JSON(http.StatusOK, resp)
}
