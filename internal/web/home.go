package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/shubh-37/storm-sessions/internal/models"
	"github.com/shubh-37/storm-sessions/internal/session"
)

type homePage struct {
	Sessions []session.SessionSummary
	Error    string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, http.StatusOK, "")
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	newSession := models.NewBrainstormSession(strings.TrimSpace(r.FormValue("SessionName")))
	if err := newSession.Validate(); err != nil {
		s.renderHome(w, r, http.StatusBadRequest, "Session name is required.")
		return
	}

	if err := s.repo.Add(r.Context(), newSession); err != nil {
		log.Printf("[web] add session: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, URLFor("Home", "Index"), http.StatusFound)
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, formError string) {
	sessions, err := s.repo.List(r.Context())
	if err != nil {
		log.Printf("[web] list sessions: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := homePage{Sessions: make([]session.SessionSummary, 0, len(sessions)), Error: formError}
	for _, bs := range sessions {
		page.Sessions = append(page.Sessions, session.NewSummary(bs))
	}
	s.render(w, status, "home.html", page)
}
