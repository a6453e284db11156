package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired inspects the access token's exp claim without verifying
// the signature; verification is the backend's job. Tokens that cannot be
// parsed or carry no exp are treated as not expired and handed to the
// backend as-is.
func tokenExpired(token string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
