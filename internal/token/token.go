package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt extracts the exp claim of a JWT-shaped access token without
// verifying its signature. The token stays opaque trust-wise — the backend
// owns the secret material — but its expiry is readable and drives the
// transparent refresh schedule. Returns false for tokens that are not JWTs
// or carry no exp claim; such tokens are simply never treated as stale.
func ExpiresAt(raw string) (time.Time, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// StaleWithin reports whether the token expires within skew of now. Tokens
// without a readable expiry are never stale.
func StaleWithin(raw string, now time.Time, skew time.Duration) bool {
	exp, ok := ExpiresAt(raw)
	if !ok {
		return false
	}
	return !exp.After(now.Add(skew))
}
