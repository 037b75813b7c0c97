package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/session"
)

// parseID returns nil for empty or non-numeric input; the controller treats
// that as a missing id.
func parseID(raw string) *int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}

	result, err := s.sessions.Show(r.Context(), parseID(raw))
	if err != nil {
		metrics.SessionOutcomes.WithLabelValues("error").Inc()
		log.Printf("[web] show session %q: %v", raw, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.SessionOutcomes.WithLabelValues(result.Kind()).Inc()

	switch res := result.(type) {
	case session.Redirect:
		http.Redirect(w, r, URLFor(res.Controller, res.Action), http.StatusFound)
	case session.Content:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(res.Text))
	case session.View:
		s.render(w, http.StatusOK, "session.html", res.Model)
	}
}
