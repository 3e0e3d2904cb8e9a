package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/cart"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/money"
	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/internal/interfaces/http/middleware"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// responder is embedded by every handler for error rendering.
type responder struct {
	log logger.Logger
}

// fail maps domain errors onto status codes. Unknown errors are logged and
// hidden behind a generic 500.
func (r responder) fail(c *gin.Context, err error) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, apperror.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, apperror.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperror.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperror.ErrEmptyCart.Error()})
	case errors.Is(err, apperror.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperror.ErrUnavailable):
		r.log.WithContext(c.Request.Context()).Warn("transient failure", logger.Error(err))
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": apperror.ErrUnavailable.Error()})
	default:
		r.log.WithContext(c.Request.Context()).Error("unhandled error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON decodes the body into dst and answers 400 itself on failure. A
// value of the wrong JSON type is reported against its field.
func (r responder) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	r.log.WithContext(c.Request.Context()).Debug("bind request body", logger.Error(err))

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		v := apperror.NewValidationError()
		v.Add(typeErr.Field, "must be "+describeJSONType(typeErr.Type))
		r.fail(c, v)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedBody.Error()})
	return false
}

func describeJSONType(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a whole number"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "true or false"
	default:
		return "a valid value"
	}
}

// caller aborts with 401 when the route was not behind Authenticate.
func (r responder) caller(c *gin.Context) (principal.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		r.fail(c, apperror.ErrUnauthenticated)
	}
	return p, ok
}

func (r responder) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		r.fail(c, apperror.NotFound("%s %q", name, c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}

type productResponse struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Price             money.Money `json:"price"`
	Category          *uuid.UUID  `json:"category"`
	QuantityAvailable int         `json:"quantity_available"`
	HarvestDate       string      `json:"harvest_date"`
	ExpiryDate        string      `json:"expiry_date"`
	Seller            uuid.UUID   `json:"seller"`
	CreatedAt         time.Time   `json:"created_at"`
}

func toProduct(p *catalog.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Category:          p.CategoryID,
		QuantityAvailable: p.QuantityAvailable,
		HarvestDate:       p.HarvestDate.Format(catalog.DateLayout),
		ExpiryDate:        p.ExpiryDate.Format(catalog.DateLayout),
		Seller:            p.SellerID,
		CreatedAt:         p.CreatedAt,
	}
}

func toProducts(ps []*catalog.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type cartItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	Product   *productResponse `json:"product"`
	Quantity  int              `json:"quantity"`
	LineTotal money.Money      `json:"line_total"`
}

type cartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []cartItemResponse `json:"items"`
	Subtotal  money.Money        `json:"subtotal"`
	CreatedAt time.Time          `json:"created_at"`
}

func toCart(c *cart.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		resp := cartItemResponse{ID: it.ID, Quantity: it.Quantity, LineTotal: it.LineTotal()}
		if it.Product != nil {
			p := toProduct(it.Product)
			resp.Product = &p
		}
		items = append(items, resp)
	}
	return cartResponse{ID: c.ID, Items: items, Subtotal: c.Subtotal(), CreatedAt: c.CreatedAt}
}

type orderItemResponse struct {
	ID          uuid.UUID   `json:"id"`
	Product     *uuid.UUID  `json:"product"`
	ProductName string      `json:"product_name"`
	Seller      uuid.UUID   `json:"seller"`
	Quantity    int         `json:"quantity"`
	PriceAtTime money.Money `json:"price_at_time"`
}

type orderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Buyer       uuid.UUID           `json:"buyer"`
	Status      order.Status        `json:"status"`
	TotalAmount money.Money         `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []orderItemResponse `json:"items"`
}

func toOrder(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:          it.ID,
			Product:     it.ProductID,
			ProductName: it.ProductName,
			Seller:      it.SellerID,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return orderResponse{
		ID:          o.ID,
		Buyer:       o.BuyerID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}

func toOrders(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}
