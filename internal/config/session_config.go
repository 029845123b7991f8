package config

import "time"

const (
	sessionCookieName = "meruem_access_token"
	sessionMaxAge     = 30 * time.Minute
)

type SessionConfig interface {
	GetSessionCookieName() string
	GetSessionMaxAge() time.Duration
	GetSessionCookieSecure() bool
}

type Session struct {
	// Browsers only accept SameSite=None cookies when Secure is set, so turning
	// this off is only useful against plain-HTTP hosts other than localhost.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

var _ SessionConfig = Session{}

func (Session) GetSessionCookieName() string {
	return sessionCookieName
}

func (Session) GetSessionMaxAge() time.Duration {
	return sessionMaxAge
}

func (s Session) GetSessionCookieSecure() bool {
	return s.CookieSecure
}
