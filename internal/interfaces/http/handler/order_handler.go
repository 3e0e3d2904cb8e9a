package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	app "github.com/MamaFati/farmDirect/internal/application/order"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// HeaderIdempotencyKey lets a client retry checkout without placing a
// second order.
const HeaderIdempotencyKey = "Idempotency-Key"

type OrderHandler struct {
	responder
	svc *app.Service
}

func NewOrderHandler(svc *app.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{responder: responder{log: log}, svc: svc}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	o, err := h.svc.PlaceOrder(c.Request.Context(), p, key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrder(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	orders, err := h.svc.ListOrders(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrders(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	o, err := h.svc.GetOrder(c.Request.Context(), p, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(o))
}
