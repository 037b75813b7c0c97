package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shubh-37/storm-sessions/internal/models"
)

// ideaDTO is the API shape of an idea.
type ideaDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

type newIdeaRequest struct {
	SessionID   int64  `json:"sessionId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleIdeasForSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("sessionId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}

	found, err := s.repo.GetByID(r.Context(), sessionID)
	if err != nil {
		log.Printf("[web] ideas for session %d: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if found == nil {
		writeJSON(w, http.StatusNotFound, sessionID)
		return
	}

	ideas := make([]ideaDTO, 0, len(found.Ideas))
	for _, idea := range found.Ideas {
		ideas = append(ideas, ideaDTO{
			ID:          idea.ID,
			Name:        idea.Name,
			Description: idea.Description,
			DateCreated: idea.DateCreated,
		})
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var req newIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	idea := models.NewIdea(req.Name, req.Description)
	if err := idea.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and description are required"})
		return
	}

	found, err := s.repo.GetByID(r.Context(), req.SessionID)
	if err != nil {
		log.Printf("[web] create idea, get session %d: %v", req.SessionID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if found == nil {
		writeJSON(w, http.StatusNotFound, req.SessionID)
		return
	}

	found.AddIdea(idea)
	if err := s.repo.Update(r.Context(), found); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, req.SessionID)
			return
		}
		log.Printf("[web] create idea, update session %d: %v", req.SessionID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, found)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[web] encode response: %v", err)
	}
}
