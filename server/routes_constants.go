package server

import "github.com/meruem/meruem-web/gate"

// Route path constants
const (
	// Public pages
	RouteRoot    = gate.PathRoot
	RouteLanding = gate.PathLanding
	RouteAbout   = "/about"
	RouteDocs    = "/docs"

	// Auth
	RouteAuth             = "/auth"
	RouteAuthLogin        = "/auth/login"
	RouteOAuthCallback    = "/oauth-callback"
	RouteAPIOAuthCallback = "/api/oauth-callback"
	RouteLogout           = "/logout"

	// Signed-in pages
	RouteHome          = gate.PathHome
	RouteHomeWorkspace = "/home/workspace/{id}"

	// API
	RouteAPISidebar = "/api/sidebar"

	// Assets and ops
	RouteStatic  = "/static/{file}"
	RouteFavicon = "/favicon.ico"
	RouteMetrics = "/metrics"
)
