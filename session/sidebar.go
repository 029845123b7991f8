package session

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	SidebarCookieName = "sidebar:state"
	sidebarMaxAge     = 60 * 60 * 24 * 7
)

// SidebarOpen reports whether the sidebar cookie asks for an expanded sidebar.
// net/http rejects ':' in cookie names, so the header is parsed by hand.
func SidebarOpen(r *http.Request) bool {
	if r == nil {
		return false
	}
	for _, line := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
			if ok && name == SidebarCookieName {
				return strings.Trim(value, `"`) == "true"
			}
		}
	}
	return false
}

// SetSidebar writes the sidebar cookie. It is presentational only.
func SetSidebar(w http.ResponseWriter, open bool) {
	value := "false"
	if open {
		value = "true"
	}
	w.Header().Add("Set-Cookie", SidebarCookieName+"="+value+"; Path=/; Max-Age="+strconv.Itoa(sidebarMaxAge)+"; SameSite=Lax")
}
