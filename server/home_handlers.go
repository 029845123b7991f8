package server

import (
	"net/http"
	"time"

	"github.com/meruem/meruem-web/bootstrap"
	"github.com/meruem/meruem-web/session"
	"github.com/meruem/meruem-web/workspace"
	"github.com/rs/zerolog/log"
)

const (
	noticeWorkspacesUnavailable  = "Could not load your workspaces"
	noticeConnectionsUnavailable = "Could not load connections for this workspace"
)

// workspaceStore builds the store for this request from the (memoised)
// bootstrap and applies the session's last selection.
func (s *Server) workspaceStore(r *http.Request, token string) (*workspace.Store, bootstrap.Result) {
	res := s.loader.Load(r.Context(), token)
	store := workspace.NewStore(res.Data)
	if token == "" {
		return store, res
	}
	if sel, err := s.selections.Get(session.Key(token)); err == nil {
		_ = store.Select(sel.WorkspaceID)
	}
	return store, res
}

// sidebar assembles the signed-in chrome. It loads the bootstrap on its own;
// within one request that costs no extra backend call.
func (s *Server) sidebar(r *http.Request, token, title string) shellData {
	data := s.shell(r, title)
	store, res := s.workspaceStore(r, token)
	data.User = store.User()
	data.Workspaces = store.Workspaces()
	data.Current = store.Current()
	if res.Outcome == bootstrap.Failed {
		data.Notice = noticeWorkspacesUnavailable
	}
	return data
}

// reauthenticate drops a session the backend no longer accepts.
func (s *Server) reauthenticate(w http.ResponseWriter, r *http.Request, token string) {
	session.LogToken(log.Ctx(r.Context()).Info(), token).Msg("Session rejected by backend, signing out")
	if token != "" {
		if err := s.selections.Delete(session.Key(token)); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to drop workspace selection")
		}
	}
	s.sessions.Clear(w)
	http.Redirect(w, r, RouteLanding, http.StatusSeeOther)
}

func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := s.sessions.Read(r)

		if res := s.loader.Load(r.Context(), token); res.Outcome == bootstrap.Unauthorized {
			s.reauthenticate(w, r, token)
			return
		}

		s.render(w, r, http.StatusOK, "home.html", s.sidebar(r, token, "Home"))
	}
}

// WorkspaceHandler selects a workspace locally and lists its connections.
func (s *Server) WorkspaceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := s.sessions.Read(r)
		id := r.PathValue("id")

		store, res := s.workspaceStore(r, token)
		switch res.Outcome {
		case bootstrap.Unauthorized:
			s.reauthenticate(w, r, token)
			return
		case bootstrap.Failed:
			s.render(w, r, http.StatusOK, "home.html", s.sidebar(r, token, "Home"))
			return
		}

		if err := store.Select(id); err != nil {
			log.Ctx(r.Context()).Info().Err(err).Msg("Workspace not in snapshot")
			s.renderNotFound(w, r)
			return
		}
		if err := s.selections.Upsert(session.Key(token), workspace.Selection{WorkspaceID: id, SelectedAt: time.Now()}); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to remember workspace selection")
		}

		conns := s.loader.Connections(r.Context(), token, id)
		if conns.Outcome == bootstrap.Unauthorized {
			s.reauthenticate(w, r, token)
			return
		}

		shell := s.sidebar(r, token, store.Current().Name)
		shell.Current = store.Current()
		data := workspacePageData{
			shellData:   shell,
			Workspace:   *store.Current(),
			Connections: conns.Connections,
		}
		if conns.Outcome == bootstrap.Failed {
			data.ConnectionsNotice = noticeConnectionsUnavailable
		}
		s.render(w, r, http.StatusOK, "workspace.html", data)
	}
}
