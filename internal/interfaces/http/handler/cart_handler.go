package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	app "github.com/MamaFati/farmDirect/internal/application/cart"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	domain "github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type CartHandler struct {
	responder
	svc *app.Service
}

func NewCartHandler(svc *app.Service, log logger.Logger) *CartHandler {
	return &CartHandler{responder: responder{log: log}, svc: svc}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Get(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	cart, err := h.svc.GetCart(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	var req addItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	productID := uuid.Nil
	if raw := strings.TrimSpace(req.ProductID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			// the id can't reach the service, so check the rest here
			v := apperror.NewValidationError()
			v.Add("product_id", "must be a valid id")
			domain.CheckQuantity(v, req.Quantity)
			h.fail(c, v)
			return
		}
		productID = id
	}

	cart, err := h.svc.AddItem(c.Request.Context(), p, productID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCart(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.svc.RemoveItem(c.Request.Context(), p, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(cart))
}
