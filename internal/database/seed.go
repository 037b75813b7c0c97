package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shubh-37/storm-sessions/internal/models"
)

// Seed adds the sample sessions when repo is empty. It is a no-op otherwise.
func Seed(ctx context.Context, repo Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list sessions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	first := &models.BrainstormSession{
		Name:        "Test Session 1",
		DateCreated: time.Date(2016, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
	first.AddIdea(models.Idea{
		Name:        "Awesome idea",
		Description: "Totally awesome idea",
		DateCreated: time.Date(2016, time.August, 1, 0, 0, 0, 0, time.UTC),
	})

	second := &models.BrainstormSession{
		Name:        "Test Session 2",
		DateCreated: time.Date(2016, time.July, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, s := range []*models.BrainstormSession{first, second} {
		if err := repo.Add(ctx, s); err != nil {
			return fmt.Errorf("seed: add %q: %w", s.Name, err)
		}
	}

	log.Printf("[database] seeded %d sessions", 2)
	return nil
}
