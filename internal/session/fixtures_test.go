package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shubh-37/storm-sessions/internal/models"
)

// randomSessions builds n valid sessions with distinct ids, non-empty names and
// timestamps within the last year. Tests override fields per scenario.
func randomSessions(n int) []*models.BrainstormSession {
	base := time.Now().UTC().Truncate(time.Second)
	ids := rand.Perm(n * 10)
	sessions := make([]*models.BrainstormSession, n)
	for i := range sessions {
		sessions[i] = &models.BrainstormSession{
			ID:          int64(ids[i] + 1),
			Name:        "session-" + uuid.NewString(),
			DateCreated: base.Add(-time.Duration(rand.Int64N(int64(365 * 24 * time.Hour)))),
			Ideas:       []models.Idea{},
		}
	}
	return sessions
}

// fakeRepository answers GetByID from a fixed set and counts calls.
type fakeRepository struct {
	mu       sync.Mutex
	sessions map[int64]*models.BrainstormSession
	err      error
	calls    []int64
}

func newFakeRepository(sessions ...*models.BrainstormSession) *fakeRepository {
	r := &fakeRepository{sessions: make(map[int64]*models.BrainstormSession)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeRepository) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if r.err != nil {
		return nil, r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sessions[id], nil
}

func (r *fakeRepository) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
