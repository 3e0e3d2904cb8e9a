package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

const principalKey = "farmdirect.principal"

type TokenVerifier interface {
	Verify(raw string) (principal.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// principal for handlers and for request logging.
func Authenticate(v TokenVerifier, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var p principal.Principal
			if p, err = v.Verify(raw); err == nil {
				c.Set(principalKey, p)
				ctx := logger.ContextWithPrincipal(c.Request.Context(), p.ID, p.Role.String())
				c.Request = c.Request.WithContext(ctx)
				c.Next()
				return
			}
		}
		log.WithContext(c.Request.Context()).Debug("authentication failed", logger.Error(err))
		c.Header("WWW-Authenticate", `Bearer realm="farmdirect"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c *gin.Context) (principal.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return principal.Principal{}, false
	}
	p, ok := v.(principal.Principal)
	return p, ok
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("missing bearer token")
	}
	return strings.TrimSpace(token), nil
}
