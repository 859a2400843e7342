package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Unix(1900000000, 0)
	token := signed(t, jwt.MapClaims{"sub": "ana", "exp": exp.Unix()})

	claims := ParseClaims(token)

	assert.True(t, claims.IsJWT)
	assert.Equal(t, "ana", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestParseClaims_Opaque(t *testing.T) {
	assert.Equal(t, Claims{}, ParseClaims("not-a-jwt"))
}

func TestInspect(t *testing.T) {
	now := time.Unix(1700000000, 0)

	valid := signed(t, jwt.MapClaims{"sub": "ana", "exp": now.Add(time.Hour).Unix()})
	_, err := Inspect(valid, now)
	require.NoError(t, err)

	expired := signed(t, jwt.MapClaims{"sub": "ana", "exp": now.Add(-time.Minute).Unix()})
	claims, err := Inspect(expired, now)
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "ana", claims.Subject)

	noExp := signed(t, jwt.MapClaims{"sub": "ana"})
	_, err = Inspect(noExp, now)
	require.NoError(t, err)

	_, err = Inspect("opaque", now)
	require.NoError(t, err)
}
