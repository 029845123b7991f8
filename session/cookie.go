// Package session owns the browser-side credential: an HttpOnly cookie that
// carries the backend's opaque bearer token.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/meruem/meruem-web/internal/config"
	"github.com/meruem/meruem-web/internal/errors"
)

type Store struct {
	name   string
	maxAge time.Duration
	secure bool
}

func New(cfg config.SessionConfig) *Store {
	return &Store{
		name:   cfg.GetSessionCookieName(),
		maxAge: cfg.GetSessionMaxAge(),
		secure: cfg.GetSessionCookieSecure(),
	}
}

func (s *Store) Name() string {
	return s.name
}

// Set issues the session cookie. The token is never refreshed; it lives until
// MaxAge runs out or Clear is called.
func (s *Store) Set(w http.ResponseWriter, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.ErrTokenAcquisitionFailure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(s.maxAge.Seconds()),
	})
	return nil
}

// Read returns the trimmed token when the cookie is present and non-empty.
func (s *Store) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(s.name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Present reports cookie presence only. Validity is the backend's call.
func (s *Store) Present(r *http.Request) bool {
	_, ok := s.Read(r)
	return ok
}

func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}

// Key derives a stable identifier for server-side state tied to a session,
// so the raw token is never used as a map key or logged.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
