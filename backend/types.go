package backend

import "time"

// Workspace is a named grouping owned by the backend.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the read-only profile snapshot returned with the workspace data.
type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	ProfileURL string `json:"profile_url"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Connection is a database connection configured on a workspace.
type Connection struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Driver      string     `json:"driver"`
	WorkspaceID string     `json:"workspaceId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	HasSchema   bool       `json:"hasSchema,omitempty"`
}

// WorkspaceData is the payload of GET /workspace/data.
type WorkspaceData struct {
	Workspaces       []Workspace `json:"workspaces"`
	User             *User       `json:"user"`
	CurrentWorkspace *Workspace  `json:"currentWorkspace,omitempty"`
}

// TokenResponse is the payload of POST /auth/google/callback.
type TokenResponse struct {
	AccessToken string `json:"meruem_access_token"`
	ExpiresIn   int    `json:"token_expires_in,omitempty"`
	Message     string `json:"message,omitempty"`
	User        *User  `json:"user,omitempty"`
}

type authorizationURLResponse struct {
	URL string `json:"url"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}
