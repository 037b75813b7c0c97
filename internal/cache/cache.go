// Package cache wraps a session repository with a Redis read-through cache.
// Sessions are stored as JSON under "storm:session:<id>" with a fixed TTL.
// Absent sessions are not cached, so a session added later is seen at once.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shubh-37/storm-sessions/internal/database"
	"github.com/shubh-37/storm-sessions/internal/metrics"
	"github.com/shubh-37/storm-sessions/internal/models"
)

// KeyPrefix is the Redis key prefix for cached sessions.
const KeyPrefix = "storm:session:"

// Repository is a database.Repository that serves GetByID from Redis when it can.
type Repository struct {
	next   database.Repository
	client *redis.Client
	ttl    time.Duration
}

// New wraps next. Callers own client and close it themselves.
func New(next database.Repository, client *redis.Client, ttl time.Duration) *Repository {
	return &Repository{next: next, client: client, ttl: ttl}
}

// Connect creates a Redis client for addr and verifies it with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: redis connection failed: %w", err)
	}
	return client, nil
}

func key(id int64) string {
	return KeyPrefix + strconv.FormatInt(id, 10)
}

// GetByID checks Redis first and falls back to the wrapped repository. Redis
// errors are logged and treated as misses.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.BrainstormSession, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var session models.BrainstormSession
		if err := json.Unmarshal(data, &session); err == nil {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return &session, nil
		}
		log.Printf("[cache] corrupt entry key=%s, refetching", key(id))
		metrics.CacheRequests.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	default:
		log.Printf("[cache] redis GET error key=%s: %v (falling through)", key(id), err)
		metrics.CacheRequests.WithLabelValues("error").Inc()
	}

	session, err := r.next.GetByID(ctx, id)
	if err != nil || session == nil {
		return session, err
	}

	r.store(ctx, session)
	return session, nil
}

func (r *Repository) List(ctx context.Context) ([]*models.BrainstormSession, error) {
	return r.next.List(ctx)
}

func (r *Repository) Add(ctx context.Context, session *models.BrainstormSession) error {
	return r.next.Add(ctx, session)
}

// Update writes through and drops the cached copy.
func (r *Repository) Update(ctx context.Context, session *models.BrainstormSession) error {
	if err := r.next.Update(ctx, session); err != nil {
		return err
	}
	if err := r.client.Del(ctx, key(session.ID)).Err(); err != nil {
		log.Printf("[cache] redis DEL error key=%s: %v", key(session.ID), err)
	}
	return nil
}

func (r *Repository) store(ctx context.Context, session *models.BrainstormSession) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[cache] marshal session %d: %v", session.ID, err)
		return
	}
	if err := r.client.Set(ctx, key(session.ID), data, r.ttl).Err(); err != nil {
		log.Printf("[cache] redis SET error key=%s: %v", key(session.ID), err)
	}
}
