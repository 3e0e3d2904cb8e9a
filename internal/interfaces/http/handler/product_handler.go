package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	app "github.com/MamaFati/farmDirect/internal/application/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

var errMalformedBody = errors.New("malformed request body")

type ProductHandler struct {
	responder
	svc *app.Service
}

func NewProductHandler(svc *app.Service, log logger.Logger) *ProductHandler {
	return &ProductHandler{responder: responder{log: log}, svc: svc}
}

// productRequest keeps every field optional so one shape serves POST, PUT
// and PATCH. An empty category string clears the category.
type productRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Category          *string          `json:"category"`
	QuantityAvailable *int             `json:"quantity_available"`
	HarvestDate       *string          `json:"harvest_date"`
	ExpiryDate        *string          `json:"expiry_date"`
}

func (r productRequest) input(v *apperror.ValidationError) catalog.ProductInput {
	in := catalog.ProductInput{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		QuantityAvailable: r.QuantityAvailable,
		HarvestDate:       r.HarvestDate,
		ExpiryDate:        r.ExpiryDate,
	}
	if r.Category != nil {
		id := uuid.Nil
		if raw := strings.TrimSpace(*r.Category); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				v.Add("category", "must be a valid id")
				return in
			}
			id = parsed
		}
		in.CategoryID = &id
	}
	return in
}

func (h *ProductHandler) bind(c *gin.Context) (catalog.ProductInput, bool) {
	var req productRequest
	if !h.bindJSON(c, &req) {
		return catalog.ProductInput{}, false
	}
	v := apperror.NewValidationError()
	in := req.input(v)
	if err := v.Err(); err != nil {
		h.fail(c, err)
		return catalog.ProductInput{}, false
	}
	return in, true
}

func (h *ProductHandler) List(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.svc.ListProducts(c.Request.Context(), p, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProducts(products))
}

func (h *ProductHandler) Create(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), p, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProduct(product))
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), p, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(product))
}

// Replace handles PUT; Update handles PATCH.
func (h *ProductHandler) Replace(c *gin.Context) {
	h.update(c, h.svc.ReplaceProduct)
}

func (h *ProductHandler) Update(c *gin.Context) {
	h.update(c, h.svc.UpdateProduct)
}

func (h *ProductHandler) update(c *gin.Context, apply func(context.Context, principal.Principal, uuid.UUID, catalog.ProductInput) (*catalog.Product, error)) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	product, err := apply(c.Request.Context(), p, id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	p, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), p, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseFilter(c *gin.Context) (catalog.Filter, error) {
	v := apperror.NewValidationError()
	f := catalog.Filter{NameContains: strings.TrimSpace(c.Query("name"))}

	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			v.Add("category", "must be a valid id")
		} else {
			f.CategoryID = &id
		}
	}
	f.MinPrice = parsePrice("min_price", c.Query("min_price"), v)
	f.MaxPrice = parsePrice("max_price", c.Query("max_price"), v)

	return f, v.Err()
}

func parsePrice(field, raw string, v *apperror.ValidationError) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		v.Add(field, "must be a number")
		return nil
	}
	return &d
}
