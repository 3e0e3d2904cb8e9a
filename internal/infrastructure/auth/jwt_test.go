package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "farmdirect"})
	want := principal.New(uuid.New(), principal.RoleSeller)

	token, err := v.Sign(want, time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: "s3cret"})
	sign := func(claims Claims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}
	}
	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	badSubject := valid()
	badSubject.Subject = "42"
	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong key", token: sign(Claims{Role: "buyer", RegisteredClaims: valid()}, "other")},
		{name: "expired", token: sign(Claims{Role: "buyer", RegisteredClaims: expired}, "s3cret")},
		{name: "no expiry", token: sign(Claims{Role: "buyer", RegisteredClaims: noExpiry}, "s3cret")},
		{name: "subject not uuid", token: sign(Claims{Role: "buyer", RegisteredClaims: badSubject}, "s3cret")},
		{name: "unknown role", token: sign(Claims{Role: "admin", RegisteredClaims: valid()}, "s3cret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
		})
	}
}

func TestVerifier_LegacyRoleClaims(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: "s3cret"})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "farmer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	p, err := v.Verify(token)
	require.NoError(t, err)
	assert.True(t, p.IsSeller())
}
