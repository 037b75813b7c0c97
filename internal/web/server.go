// Package web serves the brainstorm session pages, the ideas JSON API, health
// and metrics over net/http.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/shubh-37/storm-sessions/internal/database"
	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	repo      database.Repository
	sessions  *session.Controller
	templates *template.Template
	mux       *http.ServeMux
	httpSrv   *http.Server
	health    func(context.Context) error
}

func NewServer(repo database.Repository) *Server {
	s := &Server{
		repo:      repo,
		sessions:  session.NewController(repo),
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("POST /{$}", s.handleCreateSession)
	s.mux.HandleFunc("GET /session", s.handleSession)
	s.mux.HandleFunc("GET /session/{$}", s.handleSession)
	s.mux.HandleFunc("GET /session/{id}", s.handleSession)
	s.mux.HandleFunc("GET /api/ideas/forsession/{sessionId}", s.handleIdeasForSession)
	s.mux.HandleFunc("POST /api/ideas/create", s.handleCreateIdea)
	s.mux.HandleFunc("GET /health", s.healthCheck)
	s.mux.Handle("GET /metrics", metrics.Handler())

	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Mount registers an extra handler, such as the Slack slash command endpoint.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// SetHealthCheck makes /health report the result of check, typically a
// store ping.
func (s *Server) SetHealthCheck(check func(context.Context) error) {
	s.health = check
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Printf("[web] server starting on %s", addr)
	log.Printf("[web] health check: http://localhost%s/health", addr)

	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[web] render %s: %v", name, err)
	}
}

// healthCheck provides a simple health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			log.Printf("[web] health check failed: %v", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
