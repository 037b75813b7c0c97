package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shubh-37/storm-sessions/config"
	"github.com/shubh-37/storm-sessions/internal/cache"
	"github.com/shubh-37/storm-sessions/internal/database"
	"github.com/shubh-37/storm-sessions/internal/database/memory"
	"github.com/shubh-37/storm-sessions/internal/database/sqlite"
	"github.com/shubh-37/storm-sessions/internal/session"
	slackpkg "github.com/shubh-37/storm-sessions/internal/slack"
	"github.com/shubh-37/storm-sessions/internal/web"
)

func main() {
	log.Println("Storm sessions server starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	repo, health, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		repo = cache.New(repo, client, cfg.CacheTTL)
	}

	if cfg.SeedData {
		if err := database.Seed(ctx, repo); err != nil {
			log.Fatalf("Failed to seed sessions: %v", err)
		}
	}

	server := web.NewServer(repo)
	if health != nil {
		server.SetHealthCheck(health)
	}
	if cfg.SlackSigningSecret != "" {
		commands := slackpkg.NewCommandHandler(session.NewController(repo), cfg.SlackSigningSecret)
		server.Mount("POST /slack/commands", commands)
	}

	log.Printf("  http_addr:    %s", cfg.HTTPAddr)
	log.Printf("  store_driver: %s", cfg.StoreDriver)
	log.Printf("  redis_addr:   %s", cfg.RedisAddr)
	log.Printf("  slack:        %v", cfg.SlackSigningSecret != "")

	go func() {
		if err := server.Start(cfg.HTTPAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("received signal %v, shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore returns the configured repository, its health check (nil for the
// memory store) and a function that releases it.
func openStore(ctx context.Context, cfg *config.Config) (database.Repository, func(context.Context) error, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.CreateTables(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return database.NewBrainstormRepository(db), db.Health, db.Close, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store.Health, func() { store.Close() }, nil

	default:
		return memory.NewStore(), nil, func() {}, nil
	}
}
