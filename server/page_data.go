package server

import (
	"net/http"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/session"
)

type pageData struct {
	AppName string
	Title   string
}

// shellData is the signed-in chrome: sidebar, user menu and workspace list.
type shellData struct {
	pageData
	SidebarOpen bool
	User        *backend.User
	Workspaces  []backend.Workspace
	Current     *backend.Workspace
	Notice      string
}

type workspacePageData struct {
	shellData
	Workspace         backend.Workspace
	Connections       []backend.Connection
	ConnectionsNotice string
}

type callbackErrorData struct {
	pageData
	Message string
}

func (s *Server) page(title string) pageData {
	return pageData{AppName: s.config.GetAppName(), Title: title}
}

func (s *Server) shell(r *http.Request, title string) shellData {
	return shellData{
		pageData:    s.page(title),
		SidebarOpen: session.SidebarOpen(r),
	}
}
