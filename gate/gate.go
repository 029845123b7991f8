// Package gate decides, before any page renders, whether a request for the
// site root goes to the public landing page or the signed-in home page.
//
// The decision uses cookie presence only. A present but expired token is
// treated exactly like a valid one here; the workspace bootstrap is where an
// invalid token is discovered.
package gate

import (
	"net/http"
	"strings"

	"github.com/meruem/meruem-web/internal/metrics"
)

const (
	PathRoot    = "/"
	PathLanding = "/landing"
	PathHome    = "/home"
)

// ExcludedPrefixes are never gated. Matching is by prefix of the path with its
// leading slash removed, so "/authors" is excluded as well as "/auth".
var ExcludedPrefixes = []string{
	"api",
	"_next/static",
	"_next/image",
	"favicon.ico",
	"auth",
}

type Decision int

const (
	PassThrough Decision = iota
	RedirectLanding
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case RedirectLanding:
		return "redirect_landing"
	case RedirectHome:
		return "redirect_home"
	default:
		return "pass"
	}
}

// Target is the redirect location for d, or "" for PassThrough.
func (d Decision) Target() string {
	switch d {
	case RedirectLanding:
		return PathLanding
	case RedirectHome:
		return PathHome
	default:
		return ""
	}
}

func Excluded(path string) bool {
	rest := strings.TrimPrefix(path, "/")
	for _, p := range ExcludedPrefixes {
		if strings.HasPrefix(rest, p) {
			return true
		}
	}
	return false
}

// Decide is a pure function of (path, session cookie presence).
func Decide(path string, hasSession bool) Decision {
	if path != PathRoot || Excluded(path) {
		return PassThrough
	}
	if !hasSession {
		return RedirectLanding
	}
	return RedirectHome
}

// SessionPresence reports whether the request carries a session cookie.
type SessionPresence interface {
	Present(r *http.Request) bool
}

// Middleware applies Decide to every request. Redirects use 307 so the
// method is preserved; everything else reaches next untouched.
func Middleware(sessions SessionPresence, m *metrics.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			d := Decide(r.URL.Path, sessions.Present(r))
			m.GateDecision(d.String())
			if d == PassThrough {
				next(w, r)
				return
			}
			http.Redirect(w, r, d.Target(), http.StatusTemporaryRedirect)
		}
	}
}
