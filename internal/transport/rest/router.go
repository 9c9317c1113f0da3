package rest

import (
	"net/http"

	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Auth   *AuthHandler
	Game   *GameHandler
	Stats  *StatsHandler
	Health *HealthHandler

	// Base is the middleware applied to every route (recovery, request id,
	// logging, CORS, auth).
	Base middleware.Middleware
	// CreateLimit additionally guards the route that calls the upstream
	// puzzle generator.
	CreateLimit middleware.Middleware
}

// NewRouter builds the HTTP route table. Literal routes like
// /puzzles/statistics are registered alongside /puzzles/{id}; the mux
// prefers the more specific pattern. The create route is registered as one
// literal pattern per difficulty: a "create/{difficulty}" wildcard would
// conflict with the "{id}/save" family (neither pattern is more specific,
// so ServeMux rejects the pair), and the difficulty set is closed anyway.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Base == nil {
		deps.Base = middleware.Chain()
	}
	if deps.CreateLimit == nil {
		deps.CreateLimit = middleware.Chain()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", deps.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", deps.Auth.Logout)

	mux.HandleFunc("GET /puzzles", deps.Game.List)
	create := deps.CreateLimit(http.HandlerFunc(deps.Game.Create))
	for _, d := range domain.Difficulties() {
		mux.Handle("POST /puzzles/create/"+d.String(), create)
	}
	mux.HandleFunc("GET /puzzles/statistics", deps.Stats.PuzzleStats)
	mux.HandleFunc("GET /puzzles/leaderboard", deps.Stats.Leaderboard)
	mux.HandleFunc("GET /puzzles/{id}", deps.Game.Get)
	mux.HandleFunc("POST /puzzles/{id}/save", deps.Game.Save)
	mux.HandleFunc("POST /puzzles/{id}/check", deps.Game.Check)
	mux.HandleFunc("POST /puzzles/{id}/hint", deps.Game.Hint)
	mux.HandleFunc("POST /puzzles/{id}/reset", deps.Game.Reset)
	mux.HandleFunc("POST /puzzles/{id}/delete", deps.Game.Delete)

	return deps.Base(mux)
}
