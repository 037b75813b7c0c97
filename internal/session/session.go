// Package session presents a single brainstorm session. Show resolves an
// optional session id into a redirect, a not-found message, or a view model.
package session

import (
	"context"
	"time"

	"github.com/shubh-37/storm-sessions/internal/models"
)

// Repository is the lookup the controller needs. GetByID returns (nil, nil)
// when no session has the given id.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error)
}

// StormSessionViewModel is the display projection of a session.
type StormSessionViewModel struct {
	ID          int64
	Name        string
	DateCreated time.Time
}

// NewViewModel copies the displayed fields of s.
func NewViewModel(s *models.BrainstormSession) StormSessionViewModel {
	return StormSessionViewModel{
		ID:          s.ID,
		Name:        s.Name,
		DateCreated: s.DateCreated,
	}
}

// SessionSummary is one row of the home listing.
type SessionSummary struct {
	ID          int64
	Name        string
	DateCreated time.Time
	IdeaCount   int
}

func NewSummary(s *models.BrainstormSession) SessionSummary {
	return SessionSummary{
		ID:          s.ID,
		Name:        s.Name,
		DateCreated: s.DateCreated,
		IdeaCount:   len(s.Ideas),
	}
}
