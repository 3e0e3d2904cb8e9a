// Package auth turns bearer tokens into principals. Tokens are issued
// elsewhere; this side only verifies them.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
)

// Claims carries the subject (principal id) and the role claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}
}

// Verify checks an HS256 token and returns its principal. Every failure
// wraps apperror.ErrUnauthenticated.
func (v *Verifier) Verify(raw string) (principal.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w", apperror.ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: subject is not a uuid", apperror.ErrUnauthenticated)
	}
	role, err := principal.ParseRole(claims.Role)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w %q", apperror.ErrUnauthenticated, err, claims.Role)
	}
	return principal.New(id, role), nil
}

// Sign mints a token for p. It exists for tests and local tooling.
func (v *Verifier) Sign(p principal.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
