// Package sqlite stores sessions in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS brainstorm_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	date_created INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS ideas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES brainstorm_sessions(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	date_created INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ideas_session ON ideas(session_id);
`

// Store is a session repository backed by SQLite. Timestamps are stored as
// Unix nanoseconds and read back in UTC.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	log.Printf("[sqlite] opened %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Health checks that the database file is still reachable.
func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetByID returns nil, nil when no session has the given ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("get", time.Now())

	const query = `SELECT id, name, date_created FROM brainstorm_sessions WHERE id = ?`

	var (
		session models.BrainstormSession
		created int64
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get session: %w", err)
	}
	session.DateCreated = fromNanos(created)

	ideas, err := s.ideasFor(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Ideas = ideas
	return &session, nil
}

// List returns all sessions, newest first.
func (s *Store) List(ctx context.Context) ([]*models.BrainstormSession, error) {
	defer metrics.ObserveRepository("list", time.Now())

	const query = `
		SELECT id, name, date_created
		FROM brainstorm_sessions
		ORDER BY date_created DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list sessions: %w", err)
	}

	var sessions []*models.BrainstormSession
	for rows.Next() {
		var (
			session models.BrainstormSession
			created int64
		)
		if err := rows.Scan(&session.ID, &session.Name, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlite: scan session: %w", err)
		}
		session.DateCreated = fromNanos(created)
		sessions = append(sessions, &session)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate sessions: %w", err)
	}

	// Ideas are loaded after the cursor is closed; the pool has one connection.
	for _, session := range sessions {
		if session.Ideas, err = s.ideasFor(ctx, session.ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Add inserts a session and its ideas, assigning IDs.
func (s *Store) Add(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("add", time.Now())

	if session.DateCreated.IsZero() {
		session.DateCreated = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO brainstorm_sessions (name, date_created) VALUES (?, ?)`,
		session.Name, session.DateCreated.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite: insert session: %w", err)
	}
	if session.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: session id: %w", err)
	}

	if err := insertNewIdeas(ctx, tx, session); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Update saves the session name and inserts ideas that have no ID yet.
func (s *Store) Update(ctx context.Context, session *models.BrainstormSession) error {
	defer metrics.ObserveRepository("update", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE brainstorm_sessions SET name = ? WHERE id = ?`,
		session.Name, session.ID)
	if err != nil {
		return fmt.Errorf("sqlite: update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrSessionNotFound
	}

	if err := insertNewIdeas(ctx, tx, session); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (s *Store) ideasFor(ctx context.Context, sessionID int64) ([]models.Idea, error) {
	const query = `
		SELECT id, name, description, date_created
		FROM ideas
		WHERE session_id = ?
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		var (
			idea    models.Idea
			created int64
		)
		if err := rows.Scan(&idea.ID, &idea.Name, &idea.Description, &created); err != nil {
			return nil, fmt.Errorf("sqlite: scan idea: %w", err)
		}
		idea.DateCreated = fromNanos(created)
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate ideas: %w", err)
	}
	return ideas, nil
}

func insertNewIdeas(ctx context.Context, tx *sql.Tx, session *models.BrainstormSession) error {
	for i := range session.Ideas {
		idea := &session.Ideas[i]
		if idea.ID != 0 {
			continue
		}
		if idea.DateCreated.IsZero() {
			idea.DateCreated = time.Now()
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO ideas (session_id, name, description, date_created) VALUES (?, ?, ?, ?)`,
			session.ID, idea.Name, idea.Description, idea.DateCreated.UnixNano())
		if err != nil {
			return fmt.Errorf("sqlite: insert idea: %w", err)
		}
		if idea.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("sqlite: idea id: %w", err)
		}
	}
	return nil
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
