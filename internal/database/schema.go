package database

import (
	"context"
	"fmt"
	"log"
)

// CreateTables creates the session and idea tables if they do not exist
func (db *DB) CreateTables(ctx context.Context) error {
	log.Println("[database] creating tables")

	sessionsTable := `
	CREATE TABLE IF NOT EXISTS brainstorm_sessions (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		date_created TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_brainstorm_date_created ON brainstorm_sessions(date_created DESC);
	`

	ideasTable := `
	CREATE TABLE IF NOT EXISTS ideas (
		id BIGSERIAL PRIMARY KEY,
		session_id BIGINT NOT NULL REFERENCES brainstorm_sessions(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		date_created TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ideas_session ON ideas(session_id);
	`

	for _, table := range []string{sessionsTable, ideasTable} {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return nil
}
