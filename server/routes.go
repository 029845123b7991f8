package server

import "net/http"

func (s *Server) initRoutes() {
	// The root only ever redirects; the gate answers before the handler runs.
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))

	// Public pages
	s.RegisterRouteHandler("GET "+RouteLanding, ChainMiddleware(s.StaticPageHandler("landing.html", "Welcome"), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAbout, ChainMiddleware(s.StaticPageHandler("about.html", "About"), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteDocs, ChainMiddleware(s.StaticPageHandler("docs.html", "Docs"), s.HTMLMiddleWare()...))

	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuth, ChainMiddleware(s.AuthPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.AuthLoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteOAuthCallback, ChainMiddleware(s.OAuthCallbackRedirectHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAPIOAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Signed-in pages
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteHomeWorkspace, ChainMiddleware(s.WorkspaceHandler(), s.HTMLMiddleWare()...))

	// API
	s.RegisterRouteHandler("POST "+RouteAPISidebar, ChainMiddleware(s.SidebarHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISidebar, ChainMiddleware(s.SidebarHandler(), s.APIMiddleware()...))

	// Assets and ops
	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.AssetHandler(), s.HTMLMiddleWare(s.CompressionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteFavicon, ChainMiddleware(s.FaviconHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) FaviconHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
