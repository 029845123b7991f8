package workspace

import "time"

type Selection struct {
	WorkspaceID string
	SelectedAt  time.Time
}

// SelectionRepo remembers the last workspace each session opened. Sessions
// are addressed by session.Key, never by the raw token.
type SelectionRepo interface {
	Upsert(sessionKey string, sel Selection) error
	Get(sessionKey string) (Selection, error)
	Delete(sessionKey string) error
}
