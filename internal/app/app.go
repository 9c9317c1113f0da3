// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sudokuhub/backend/internal/adapter/postgres"
	gamerepo "github.com/sudokuhub/backend/internal/adapter/postgres/game"
	recordrepo "github.com/sudokuhub/backend/internal/adapter/postgres/record"
	tokenrepo "github.com/sudokuhub/backend/internal/adapter/postgres/token"
	userrepo "github.com/sudokuhub/backend/internal/adapter/postgres/user"
	"github.com/sudokuhub/backend/internal/adapter/provider/sugoku"
	"github.com/sudokuhub/backend/internal/auth"
	"github.com/sudokuhub/backend/internal/config"
	authsvc "github.com/sudokuhub/backend/internal/service/auth"
	gamesvc "github.com/sudokuhub/backend/internal/service/game"
	statssvc "github.com/sudokuhub/backend/internal/service/stats"
	"github.com/sudokuhub/backend/internal/transport/middleware"
	"github.com/sudokuhub/backend/internal/transport/rest"
)

// createRatePerMinute bounds per-IP puzzle creation, which fans out to the
// upstream generator.
const createRatePerMinute = 10

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph, and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	games := gamerepo.New(pool)
	records := recordrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	generator := sugoku.NewClient(cfg.Sugoku, logger)

	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	gameService := gamesvc.NewService(logger, games, records, generator, txManager)
	statsService := statssvc.NewService(logger, records)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Auth:   rest.NewAuthHandler(authService, logger),
		Game:   rest.NewGameHandler(gameService, logger),
		Stats:  rest.NewStatsHandler(statsService, logger),
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Base: middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID,
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
			middleware.Auth(authService),
		),
		CreateLimit: limiter.Limit(createRatePerMinute),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
