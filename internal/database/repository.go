package database

import (
	"context"

	"github.com/shubh-37/storm-sessions/internal/models"
)

// Repository is the full session store contract shared by the postgres,
// sqlite and memory backends. GetByID returns (nil, nil) when absent.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error)
	List(ctx context.Context) ([]*models.BrainstormSession, error)
	Add(ctx context.Context, session *models.BrainstormSession) error
	Update(ctx context.Context, session *models.BrainstormSession) error
}

var _ Repository = (*BrainstormRepository)(nil)
