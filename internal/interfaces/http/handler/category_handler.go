package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/MamaFati/farmDirect/internal/application/catalog"
	"github.com/MamaFati/farmDirect/internal/domain/catalog"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// CategoryHandler is read-only; categories are managed with marketctl.
type CategoryHandler struct {
	responder
	svc *app.Service
}

func NewCategoryHandler(svc *app.Service, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{responder: responder{log: log}, svc: svc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategory(cat))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategory(cat))
}

func toCategory(c *catalog.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}
