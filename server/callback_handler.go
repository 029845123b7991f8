package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/meruem/meruem-web/internal/errors"
	"github.com/meruem/meruem-web/session"
	"github.com/rs/zerolog/log"
)

const (
	msgCodeNotProvided      = "Code not provided"
	msgAuthenticationFailed = "Authentication failed"
)

// OAuthCallbackRedirectHandler forwards the provider's redirect to the single
// place that performs the exchange, keeping the query untouched.
func (s *Server) OAuthCallbackRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := RouteAPIOAuthCallback
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}
}

// OAuthCallbackHandler exchanges the authorization code with the backend,
// stores the returned token in the session cookie and sends the user to the
// root, where the gate takes over.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.Ctx(r.Context())

		// Query() has already decoded the value once.
		code := r.URL.Query().Get("code")
		if strings.TrimSpace(code) == "" {
			logger.Warn().Err(errors.ErrMissingAuthorizationCode).Msg("OAuth callback without code")
			s.metrics.CallbackOutcome("missing_code")
			s.writeCallbackError(w, r, http.StatusBadRequest, msgCodeNotProvided)
			return
		}

		resp, err := s.backend.ExchangeCode(r.Context(), code)
		if err != nil {
			logger.Error().Err(err).Msg("OAuth code exchange failed")
			s.metrics.CallbackOutcome("exchange_failed")
			s.writeCallbackError(w, r, http.StatusInternalServerError, msgAuthenticationFailed)
			return
		}

		if err := s.sessions.Set(w, resp.AccessToken); err != nil {
			logger.Error().Err(err).Msg("No access token in exchange response")
			s.metrics.CallbackOutcome("no_token")
			s.writeCallbackError(w, r, http.StatusInternalServerError, msgAuthenticationFailed)
			return
		}

		session.LogToken(logger.Info(), resp.AccessToken).Int("expires_in", resp.ExpiresIn).Msg("Signed in")

		s.metrics.CallbackOutcome("success")
		http.Redirect(w, r, RouteRoot, http.StatusFound)
	}
}

func (s *Server) writeCallbackError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	s.render(w, r, status, "callback_error.html", callbackErrorData{
		pageData: s.page("Sign-in problem"),
		Message:  message,
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
