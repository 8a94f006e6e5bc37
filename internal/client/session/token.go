package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiredAt reports whether the bearer token's embedded expiry claim is at
// or before now.
//
// The token is decoded without signature verification: the client never
// holds the signing key and never re-signs, it only needs the exp claim to
// decide whether a live authorization attempt is worth making. Anything
// that cannot be decoded, or carries no expiry, is treated as expired so
// that an unparsable credential can never appear valid.
func expiredAt(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return !exp.Time.After(now)
}
