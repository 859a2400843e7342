package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned for a JWT whose exp claim has passed.
var ErrTokenExpired = errors.New("token expired, run `nutrilog login` again")

// Claims is what the client reads from a token. The signature is never
// checked here; the API does that.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IsJWT     bool
}

// ParseClaims reads sub and exp from token without verifying it. Opaque
// tokens yield zero Claims with IsJWT false.
func ParseClaims(token string) Claims {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}
	}

	claims := Claims{IsJWT: true}

	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}

	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims
}

// Inspect parses token and rejects it when already expired at now.
func Inspect(token string, now time.Time) (Claims, error) {
	claims := ParseClaims(token)

	if !claims.ExpiresAt.IsZero() && !now.Before(claims.ExpiresAt) {
		return claims, fmt.Errorf("%w (expired %s)", ErrTokenExpired, claims.ExpiresAt.Local().Format(time.DateTime))
	}

	return claims, nil
}
