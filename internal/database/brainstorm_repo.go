package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/models"
)

type BrainstormRepository struct {
	db *DB
}

func NewBrainstormRepository(db *DB) *BrainstormRepository {
	return &BrainstormRepository{db: db}
}

// Add inserts a session and its ideas, assigning IDs
func (r *BrainstormRepository) Add(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("add", time.Now())

	if session.DateCreated.IsZero() {
		session.DateCreated = time.Now()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO brainstorm_sessions (name, date_created)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := tx.QueryRow(ctx, query, session.Name, session.DateCreated).Scan(&session.ID); err != nil {
		return fmt.Errorf("failed to create brainstorm session: %w", err)
	}

	if err := insertNewIdeas(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit brainstorm session: %w", err)
	}

	return nil
}

// GetByID retrieves a session with its ideas. It returns nil, nil when no
// session has the given ID.
func (r *BrainstormRepository) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("get", time.Now())

	query := `
		SELECT id, name, date_created
		FROM brainstorm_sessions
		WHERE id = $1
	`

	session := &models.BrainstormSession{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Name,
		&session.DateCreated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brainstorm session: %w", err)
	}

	ideas, err := r.ideasFor(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Ideas = ideas

	return session, nil
}

// List retrieves all sessions, newest first
func (r *BrainstormRepository) List(ctx context.Context) ([]*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("list", time.Now())

	query := `
		SELECT s.id, s.name, s.date_created,
		       i.id, i.name, i.description, i.date_created
		FROM brainstorm_sessions s
		LEFT JOIN ideas i ON i.session_id = s.id
		ORDER BY s.date_created DESC, s.id DESC, i.id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query brainstorm sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.BrainstormSession
	var current *models.BrainstormSession
	for rows.Next() {
		var (
			s        models.BrainstormSession
			ideaID   *int64
			ideaName *string
			ideaDesc *string
			ideaDate *time.Time
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.DateCreated, &ideaID, &ideaName, &ideaDesc, &ideaDate); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if current == nil || current.ID != s.ID {
			s.Ideas = []models.Idea{}
			current = &s
			sessions = append(sessions, current)
		}
		if ideaID != nil {
			current.Ideas = append(current.Ideas, models.Idea{
				ID:          *ideaID,
				Name:        *ideaName,
				Description: *ideaDesc,
				DateCreated: *ideaDate,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// Update saves the session name and inserts any ideas that have no ID yet
func (r *BrainstormRepository) Update(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("update", time.Now())

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE brainstorm_sessions
		SET name = $2
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, session.ID, session.Name)
	if err != nil {
		return fmt.Errorf("failed to update brainstorm session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrSessionNotFound
	}

	if err := insertNewIdeas(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit brainstorm session: %w", err)
	}

	return nil
}

func (r *BrainstormRepository) ideasFor(ctx context.Context, sessionID int64) ([]models.Idea, error) {
	query := `
		SELECT id, name, description, date_created
		FROM ideas
		WHERE session_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		var idea models.Idea
		if err := rows.Scan(&idea.ID, &idea.Name, &idea.Description, &idea.DateCreated); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ideas: %w", err)
	}

	return ideas, nil
}

func insertNewIdeas(ctx context.Context, tx pgx.Tx, session *models.BrainstormSession) error {
	query := `
		INSERT INTO ideas (session_id, name, description, date_created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for i := range session.Ideas {
		idea := &session.Ideas[i]
		if idea.ID != 0 {
			continue
		}
		if idea.DateCreated.IsZero() {
			idea.DateCreated = time.Now()
		}
		if err := tx.QueryRow(ctx, query, session.ID, idea.Name, idea.Description, idea.DateCreated).Scan(&idea.ID); err != nil {
			return fmt.Errorf("failed to create idea: %w", err)
		}
	}

	return nil
}
