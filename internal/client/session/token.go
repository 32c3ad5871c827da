package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token has no expiry claim")

// TokenExpiry extracts the expiry instant from the access token's payload
// segment. The signature is deliberately not verified: the client reads exp
// only to decide when to refresh, and the server remains the sole authority
// on token validity.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

// IsTokenExpired reports whether the token's exp claim is at or before now.
// A token that cannot be decoded, or that carries no exp claim, is treated
// as expired, never as valid.
func IsTokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return !exp.After(now)
}
