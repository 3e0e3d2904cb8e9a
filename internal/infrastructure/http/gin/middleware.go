package gin

import (
	"net/http"
	"time"

	ginlib "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one, and
// stores it on the request context for log enrichment.
func RequestID() ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func AccessLog(log logger.Logger) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		}
		l := log.WithContext(c.Request.Context())
		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Warn("request failed", fields...)
			return
		}
		l.Info("request", fields...)
	}
}

func Recovery(log logger.Logger) ginlib.HandlerFunc {
	return ginlib.CustomRecovery(func(c *ginlib.Context, recovered any) {
		log.WithContext(c.Request.Context()).Error("panic recovered", logger.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ginlib.H{"error": "internal server error"})
	})
}
