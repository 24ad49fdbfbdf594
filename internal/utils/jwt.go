package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token parses as a JWT but carries no exp
// claim.
var ErrNoExpiry = errors.New("token has no expiration claim")

// PeekTokenExpiry reads the exp claim of a JWT without verifying its
// signature. The client cannot verify server tokens; the value is advisory
// and only used for display and logging.
//
// Tokens that are not JWTs at all return a parse error, callers should treat
// the session token as opaque in that case.
func PeekTokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
