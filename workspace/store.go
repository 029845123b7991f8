// Package workspace holds the workspace state a page renders from: the
// bootstrap snapshot plus the user's local selection.
package workspace

import (
	"slices"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/internal/errors"
)

// Store is built once per render from a bootstrap snapshot. Selection is
// local only and never sent to the backend.
type Store struct {
	workspaces []backend.Workspace
	user       *backend.User
	backendCur *backend.Workspace
	selected   *backend.Workspace
}

func NewStore(data backend.WorkspaceData) *Store {
	s := &Store{
		workspaces: slices.Clone(data.Workspaces),
		user:       data.User,
	}
	if s.workspaces == nil {
		s.workspaces = []backend.Workspace{}
	}
	if data.CurrentWorkspace != nil {
		cur := *data.CurrentWorkspace
		s.backendCur = &cur
	}
	return s
}

// Workspaces returns a copy of the workspace list in backend order.
func (s *Store) Workspaces() []backend.Workspace {
	return slices.Clone(s.workspaces)
}

func (s *Store) User() *backend.User {
	return s.user
}

// Current resolves the active workspace: explicit selection, then the
// backend's current workspace, then the first one. Nil when there are none.
func (s *Store) Current() *backend.Workspace {
	switch {
	case s.selected != nil:
		return s.selected
	case s.backendCur != nil:
		return s.backendCur
	case len(s.workspaces) > 0:
		return &s.workspaces[0]
	}
	return nil
}

// Find returns the workspace with the given id.
func (s *Store) Find(id string) (*backend.Workspace, bool) {
	i := slices.IndexFunc(s.workspaces, func(w backend.Workspace) bool { return w.ID == id })
	if i < 0 {
		return nil, false
	}
	return &s.workspaces[i], true
}

// Select marks id as the current workspace. Unknown ids leave the store
// unchanged.
func (s *Store) Select(id string) error {
	ws, ok := s.Find(id)
	if !ok {
		return errors.Wrapf(errors.ErrWorkspaceNotFound, "select %q", id)
	}
	s.selected = ws
	return nil
}
