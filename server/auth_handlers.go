package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// AuthPageHandler renders the sign-in page in its idle state.
func (s *Server) AuthPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "auth.html", s.page("Sign in"))
	}
}

// AuthLoginHandler starts the Google flow: it asks the backend for the
// consent URL and sends the browser there. Any failure is logged and the
// sign-in page comes back idle, with nothing shown to the user.
func (s *Server) AuthLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.backend.AuthorizationURL(r.Context())
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to get Google auth URL")
			s.render(w, r, http.StatusOK, "auth.html", s.page("Sign in"))
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}
