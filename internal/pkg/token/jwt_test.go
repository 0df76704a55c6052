package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", 0)

	signed, err := svc.GenerateToken("user-1", "session-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "session-1", claims.ID)
	assert.Nil(t, claims.ExpiresAt, "sem TTL o token não expira")
}

func TestService_RejectsOtherSecret(t *testing.T) {
	signed, err := NewService("secret", 0).GenerateToken("user-1", "session-1")
	require.NoError(t, err)

	_, err = NewService("another", 0).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Expiry(t *testing.T) {
	svc := NewService("secret", time.Hour)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	signed, err := svc.GenerateToken("user-1", "session-1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsGarbageAndNone(t *testing.T) {
	svc := NewService("secret", 0)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "s", Subject: "u", Issuer: issuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
