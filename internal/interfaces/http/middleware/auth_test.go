package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type stubVerifier map[string]principal.Principal

func (s stubVerifier) Verify(raw string) (principal.Principal, error) {
	p, ok := s[raw]
	if !ok {
		return principal.Principal{}, errors.New("bad token")
	}
	return p, nil
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buyer := principal.New(uuid.New(), principal.RoleBuyer)

	r := gin.New()
	r.Use(Authenticate(stubVerifier{"good": buyer}, logger.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		assert.True(t, ok)
		c.String(http.StatusOK, p.ID.String())
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", want: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer good", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, buyer.ID.String(), w.Body.String())
			}
		})
	}
}
