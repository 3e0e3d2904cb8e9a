package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MamaFati/farmDirect/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Check reports whether one backing service is reachable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	log    logger.Logger
	checks map[string]Check
}

func NewHealthHandler(log logger.Logger) *HealthHandler {
	return &HealthHandler{log: log, checks: make(map[string]Check)}
}

// Register adds a dependency probe; it must be called before serving.
func (h *HealthHandler) Register(name string, check Check) {
	h.checks[name] = check
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.WithContext(ctx).Warn("health check failed", logger.String("dependency", name), logger.Error(err))
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	c.JSON(status, body)
}
