package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/bootstrap"
	"github.com/meruem/meruem-web/internal/config"
	"github.com/meruem/meruem-web/internal/metrics"
	"github.com/meruem/meruem-web/session"
	"github.com/meruem/meruem-web/workspace"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	backend    backend.Client
	sessions   *session.Store
	loader     *bootstrap.Loader
	selections workspace.SelectionRepo
	metrics    *metrics.Metrics
	pages      map[string]*template.Template
	assets     *assets
}

func New(cfg config.Config, client backend.Client, selections workspace.SelectionRepo, m *metrics.Metrics) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	static, err := newAssets()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to index static assets: %w", err)
	}

	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		backend:    client,
		sessions:   session.New(cfg),
		loader:     bootstrap.NewLoader(client, cfg.GetBackendTimeout(), m),
		selections: selections,
		metrics:    m,
		pages:      pages,
		assets:     static,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.config.IsDev() {
		return
	}
	for _, route := range s.routes {
		method, path, ok := strings.Cut(route, " ")
		if !ok {
			method, path = "", route
		}
		log.Debug().Str("method", colourMethod(method)).Msg(path)
	}
}
