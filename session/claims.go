package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Claims mirrors the payload the backend puts in its access tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	jwt.RegisteredClaims
}

var _ zerolog.LogObjectMarshaler = (*Claims)(nil)

// Inspect decodes the token payload WITHOUT verifying the signature. The web
// tier has no key for that; use the result for logging only, never to decide
// whether a request is authenticated.
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("inspect token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp lies before now. Tokens without
// exp never expire here.
func (c *Claims) Expired(now time.Time) bool {
	return c != nil && c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

func (c *Claims) MarshalZerologObject(e *zerolog.Event) {
	if c == nil {
		return
	}
	e.Str("user_id", c.UserID).Str("user_email", c.UserEmail)
	if c.ExpiresAt != nil {
		e.Time("expires_at", c.ExpiresAt.Time).Bool("expired", c.Expired(time.Now()))
	}
}

// LogToken adds the token's claims to ev under "claims". Undecodable tokens
// are noted, never logged raw.
func LogToken(ev *zerolog.Event, token string) *zerolog.Event {
	claims, err := Inspect(token)
	if err != nil {
		return ev.Bool("opaque_token", true)
	}
	return ev.Object("claims", claims)
}
