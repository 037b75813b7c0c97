package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shubh-37/storm-sessions/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetByIDMissing(t *testing.T) {
	store := newTestStore(t)

	session, err := store.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil, got %+v", session)
	}
}

func TestAddAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := models.NewBrainstormSession("Test One")
	session.DateCreated = time.Date(2022, time.August, 2, 0, 0, 0, 0, time.UTC)
	session.AddIdea(models.NewIdea("Awesome idea", "Totally awesome idea"))

	if err := store.Add(ctx, session); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if session.ID != 1 {
		t.Errorf("expected ID 1, got %d", session.ID)
	}

	got, err := store.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.Name != "Test One" {
		t.Errorf("expected name %q, got %q", "Test One", got.Name)
	}
	if !got.DateCreated.Equal(session.DateCreated) {
		t.Errorf("expected %v, got %v", session.DateCreated, got.DateCreated)
	}
	if got.DateCreated.Day() != 2 {
		t.Errorf("expected day 2, got %d", got.DateCreated.Day())
	}
	if len(got.Ideas) != 1 || got.Ideas[0].ID != session.Ideas[0].ID {
		t.Errorf("unexpected ideas: %+v", got.Ideas)
	}
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := models.NewBrainstormSession("Roadmap")
	if err := store.Add(ctx, session); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	session.Name = "Roadmap 2"
	session.AddIdea(models.NewIdea("first", "one"))
	if err := store.Update(ctx, session); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := store.Update(ctx, session); err != nil {
		t.Fatalf("second Update() error: %v", err)
	}

	got, _ := store.GetByID(ctx, session.ID)
	if got.Name != "Roadmap 2" {
		t.Errorf("expected %q, got %q", "Roadmap 2", got.Name)
	}
	if len(got.Ideas) != 1 {
		t.Errorf("expected 1 idea, got %d", len(got.Ideas))
	}
}

func TestUpdateMissing(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(context.Background(), &models.BrainstormSession{ID: 3, Name: "x"})
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := models.NewBrainstormSession("older")
	older.DateCreated = time.Date(2016, time.July, 1, 0, 0, 0, 0, time.UTC)
	newer := models.NewBrainstormSession("newer")
	newer.DateCreated = time.Date(2016, time.August, 1, 0, 0, 0, 0, time.UTC)
	newer.AddIdea(models.NewIdea("a", "b"))
	for _, s := range []*models.BrainstormSession{older, newer} {
		if err := store.Add(ctx, s); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "newer" || len(sessions[0].Ideas) != 1 {
		t.Errorf("unexpected first session: %+v", sessions[0])
	}
	if sessions[1].Name != "older" || len(sessions[1].Ideas) != 0 {
		t.Errorf("unexpected second session: %+v", sessions[1])
	}
}

func TestHealth(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := store.Health(context.Background()); err != nil {
		t.Fatalf("Health() error: %v", err)
	}

	store.Close()
	if err := store.Health(context.Background()); err == nil {
		t.Error("expected Health() to fail after Close")
	}
}
