package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
)

// Get returns a single game with its locked mask and solved state.
// Games owned by another user yield ErrForbidden. Observing a solved game
// records the solve, which backfills records for games finished before
// their record was written.
func (s *Service) Get(ctx context.Context, gameID uuid.UUID) (View, error) {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("game.Get: %w", err)
	}

	if g.IsSolved() {
		rec := &domain.SolveRecord{
			GameID:     g.ID,
			UserID:     g.UserID,
			Difficulty: g.Difficulty,
			SolvedAt:   time.Now(),
		}
		if err := s.records.CreateIfAbsent(ctx, rec); err != nil {
			return View{}, fmt.Errorf("game.Get record solve: %w", err)
		}
	}

	return newView(g), nil
}
