package auth

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Description summarises a token for display. Tokens that do not parse as a
// JWT are reported as Opaque.
type Description struct {
	Opaque    bool
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (d Description) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && d.ExpiresAt.Before(now)
}

// Describe decodes token claims without verifying the signature. It is only
// used for display.
func Describe(token string) Description {
	parser := gojwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, gojwt.MapClaims{})
	if err != nil {
		return Description{Opaque: true}
	}

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok {
		return Description{Opaque: true}
	}

	var d Description
	if sub, err := claims.GetSubject(); err == nil {
		d.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		d.Issuer = iss
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		d.ExpiresAt = exp.Time
	}
	return d
}
