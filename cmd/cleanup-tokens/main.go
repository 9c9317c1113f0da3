// Command cleanup-tokens deletes expired and revoked refresh tokens. It is
// intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/sudokuhub/backend/internal/adapter/postgres"
	tokenrepo "github.com/sudokuhub/backend/internal/adapter/postgres/token"
	"github.com/sudokuhub/backend/internal/app"
	"github.com/sudokuhub/backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := tokenrepo.New(pool).DeleteExpired(ctx)
	if err != nil {
		logger.Error("token cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("token cleanup completed", slog.Int("deleted", deleted))
}
