package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sudokuhub/backend/internal/domain"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	PuzzleStats(ctx context.Context) (map[domain.Difficulty]int, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error)
}

// StatsHandler serves the statistics REST endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type leaderboardEntry struct {
	Username string `json:"username"`
	Solved   int    `json:"solved"`
}

// PuzzleStats handles GET /puzzles/statistics. The response maps difficulty
// to solve count; difficulties with no solves are absent.
func (h *StatsHandler) PuzzleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.PuzzleStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// Leaderboard handles GET /puzzles/leaderboard.
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	entries := make([]leaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, leaderboardEntry{Username: row.Username, Solved: row.Solved})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *StatsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
