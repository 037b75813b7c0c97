package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shubh-37/storm-sessions/internal/database/memory"
	"github.com/shubh-37/storm-sessions/internal/models"
)

// countingStore counts GetByID calls that reach the backing store.
type countingStore struct {
	*memory.Store
	gets atomic.Int64
}

func (c *countingStore) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	c.gets.Add(1)
	return c.Store.GetByID(ctx, id)
}

// newTestCache requires a running Redis on localhost:6379 and removes all
// cached session keys before and after the test.
func newTestCache(t *testing.T) (*Repository, *countingStore) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	flush := func() {
		iter := client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
	}
	flush()
	t.Cleanup(func() {
		flush()
		client.Close()
	})

	store := &countingStore{Store: memory.NewStore()}
	return New(store, client, time.Minute), store
}

func TestGetByIDCachesHits(t *testing.T) {
	repo, store := newTestCache(t)
	ctx := context.Background()

	session := models.NewBrainstormSession("Test One")
	session.DateCreated = time.Date(2022, time.August, 2, 0, 0, 0, 0, time.UTC)
	if err := repo.Add(ctx, session); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := repo.GetByID(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetByID() error: %v", err)
		}
		if got.Name != "Test One" || got.DateCreated.Day() != 2 {
			t.Errorf("unexpected session: %+v", got)
		}
	}
	if n := store.gets.Load(); n != 1 {
		t.Errorf("expected 1 backing GetByID call, got %d", n)
	}
}

func TestGetByIDMissingIsNotCached(t *testing.T) {
	repo, store := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := repo.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("GetByID() error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	}
	if n := store.gets.Load(); n != 2 {
		t.Errorf("expected 2 backing calls, got %d", n)
	}

	if err := repo.Add(ctx, models.NewBrainstormSession("late")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	got, err := repo.GetByID(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("expected session after Add, got %+v, %v", got, err)
	}
}

func TestUpdateInvalidates(t *testing.T) {
	repo, _ := newTestCache(t)
	ctx := context.Background()

	session := models.NewBrainstormSession("before")
	if err := repo.Add(ctx, session); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := repo.GetByID(ctx, session.ID); err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}

	session.Name = "after"
	session.AddIdea(models.NewIdea("idea", "description"))
	if err := repo.Update(ctx, session); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Name != "after" || len(got.Ideas) != 1 {
		t.Errorf("expected updated session, got %+v", got)
	}
}

func TestKey(t *testing.T) {
	if got := key(42); got != "storm:session:42" {
		t.Errorf("key(42) = %q", got)
	}
}
