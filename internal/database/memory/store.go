// Package memory is an in-process session store. It is the default backend
// and the one the web tests run against.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/models"
)

// Store keeps sessions in a map. Values are cloned on the way in and out.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*models.BrainstormSession
	nextID   int64
	nextIdea int64
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*models.BrainstormSession)}
}

// GetByID returns nil, nil when no session has the given ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("get", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id].Clone(), nil
}

// List returns all sessions, newest first.
func (s *Store) List(ctx context.Context) ([]*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("list", time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*models.BrainstormSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.BrainstormSession) int {
		if c := b.DateCreated.Compare(a.DateCreated); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// Add stores a new session and assigns IDs to it and its ideas.
func (s *Store) Add(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("add", time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}
	if session.DateCreated.IsZero() {
		session.DateCreated = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	session.ID = s.nextID
	s.assignIdeaIDs(session)
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Update saves the session name and appends ideas that have no ID yet.
// Ideas already stored are kept.
func (s *Store) Update(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("update", time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[session.ID]
	if !ok {
		return models.ErrSessionNotFound
	}

	updated := stored.Clone()
	updated.Name = session.Name
	for i := range session.Ideas {
		if session.Ideas[i].ID != 0 {
			continue
		}
		s.assignIdeaID(&session.Ideas[i])
		updated.Ideas = append(updated.Ideas, session.Ideas[i])
	}
	s.sessions[session.ID] = updated
	return nil
}

func (s *Store) assignIdeaIDs(session *models.BrainstormSession) {
	for i := range session.Ideas {
		if session.Ideas[i].ID == 0 {
			s.assignIdeaID(&session.Ideas[i])
		}
	}
}

func (s *Store) assignIdeaID(idea *models.Idea) {
	s.nextIdea++
	idea.ID = s.nextIdea
	if idea.DateCreated.IsZero() {
		idea.DateCreated = time.Now()
	}
}
