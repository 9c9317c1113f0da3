// Command migrate applies the embedded goose migrations to the configured
// database.
//
// Usage:
//
//	migrate [up|down|status]
//
// The default action is "up". Requires DATABASE_DSN (or a config file via
// CONFIG_PATH) like the server binary.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/sudokuhub/backend/internal/app"
	"github.com/sudokuhub/backend/internal/config"
	"github.com/sudokuhub/backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		logger.Error("create goose provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch action {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			logger.Error("migrate up", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			logger.Error("migrate down", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migration rolled back", slog.String("migration", result.Source.Path))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			logger.Error("migrate status", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%s  %s\n", applied, s.Source.Path)
		}
	default:
		log.Fatalf("unknown action %q (want up, down, or status)", action)
	}
}
