package workspace

import (
	"fmt"
	"sync"

	"github.com/meruem/meruem-web/internal/errors"
)

var _ SelectionRepo = (*InMemorySelectionRepo)(nil)

type InMemorySelectionRepo struct {
	mu         sync.RWMutex
	selections map[string]Selection // session key -> selection
}

func NewInMemorySelectionRepo() *InMemorySelectionRepo {
	return &InMemorySelectionRepo{
		selections: make(map[string]Selection),
	}
}

func (r *InMemorySelectionRepo) Upsert(sessionKey string, sel Selection) error {
	if sessionKey == "" {
		return fmt.Errorf("sessionKey is required")
	}
	if sel.WorkspaceID == "" {
		return fmt.Errorf("workspaceID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections[sessionKey] = sel
	return nil
}

func (r *InMemorySelectionRepo) Get(sessionKey string) (Selection, error) {
	if sessionKey == "" {
		return Selection{}, fmt.Errorf("sessionKey is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	sel, ok := r.selections[sessionKey]
	if !ok {
		return Selection{}, errors.ErrWorkspaceNotFound
	}
	return sel, nil
}

// Delete is a no-op for unknown keys.
func (r *InMemorySelectionRepo) Delete(sessionKey string) error {
	if sessionKey == "" {
		return fmt.Errorf("sessionKey is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selections, sessionKey)
	return nil
}
