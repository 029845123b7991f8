package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/meruem/meruem-web/session"
	"github.com/rs/zerolog/log"
)

// LogoutHandler clears local session state and hands the browser to the
// backend's logout endpoint.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := s.sessions.Read(r); ok {
			if err := s.selections.Delete(session.Key(token)); err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to drop workspace selection")
			}
		}
		s.sessions.Clear(w)
		http.Redirect(w, r, s.backend.LogoutURL(), http.StatusFound)
	}
}

// SidebarHandler stores the sidebar open/closed preference and goes back.
func (s *Server) SidebarHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		open, err := strconv.ParseBool(r.FormValue("open"))
		if err != nil {
			http.Error(w, "Invalid sidebar state", http.StatusBadRequest)
			return
		}
		session.SetSidebar(w, open)
		http.Redirect(w, r, localRedirect(r.FormValue("redirect"), RouteHome), http.StatusSeeOther)
	}
}

// localRedirect accepts only same-site absolute paths.
func localRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
