package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/caredesk/go-admin-portal/bootstrap"
	"github.com/caredesk/go-admin-portal/internal/config"
	"github.com/caredesk/go-admin-portal/internal/metrics"
	"github.com/caredesk/go-admin-portal/server/ui"
	"github.com/caredesk/go-admin-portal/session"
)

// Deps holds the collaborators the Server needs.
type Deps struct {
	Sessions       session.Repo
	Backend        *backend.Client
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
}

// Server renders the admin UI and gates every protected page on session
// validity. It holds no scheduling state of its own.
type Server struct {
	env     string // Environment (e.g., "DEV", "production")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	deps    Deps
	boot    *bootstrap.Bootstrapper
	metrics metrics.Recorder
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil || deps.Backend == nil {
		return nil, fmt.Errorf("[Server New] sessions and backend client are required")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Noop{}
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		deps:    deps,
		boot:    bootstrap.New(deps.Sessions, deps.Backend),
		metrics: deps.Metrics,
	}
	s.env = cfg.GetEnv()

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
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := ui.MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ui.ResetColor
	} else {
		displayMethod = ui.Gray + paddedMethod + ui.ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
