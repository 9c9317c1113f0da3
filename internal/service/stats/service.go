// Package stats implements the solve-count aggregations: per-user statistics
// by difficulty and the global leaderboard.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/pkg/ctxutil"
)

// recordRepo defines the solve-record repository interface needed by stats.
type recordRepo interface {
	CountByDifficulty(ctx context.Context, userID uuid.UUID) (map[domain.Difficulty]int, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error)
}

// Service implements statistics queries.
type Service struct {
	log     *slog.Logger
	records recordRepo
}

// NewService creates a new stats service instance.
func NewService(logger *slog.Logger, records recordRepo) *Service {
	return &Service{
		log:     logger.With("service", "stats"),
		records: records,
	}
}

// PuzzleStats returns the context user's solve counts keyed by difficulty.
// Difficulties the user has never solved are absent from the map, so the
// client distinguishes "zero solves" from "difficulty never attempted".
func (s *Service) PuzzleStats(ctx context.Context) (map[domain.Difficulty]int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	counts, err := s.records.CountByDifficulty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.PuzzleStats: %w", err)
	}

	return counts, nil
}

// Leaderboard returns all users with at least one solve, ordered by total
// solves descending, username ascending on ties.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	rows, err := s.records.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats.Leaderboard: %w", err)
	}

	return rows, nil
}
