package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/pkg/ctxutil"
)

// Create fetches a fresh puzzle of the requested difficulty from the upstream
// generator and stores it for the context user. When the generator is down
// the error wraps ErrUnavailable and nothing is persisted.
func (s *Service) Create(ctx context.Context, input CreateInput) (View, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return View{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return View{}, err
	}
	difficulty := domain.Difficulty(input.Difficulty)

	puzzle, err := s.generator.Generate(ctx, difficulty)
	if err != nil {
		return View{}, fmt.Errorf("game.Create: %w", err)
	}

	now := time.Now()
	g, err := s.games.Create(ctx, &domain.Game{
		ID:         uuid.New(),
		UserID:     userID,
		Initial:    puzzle.Board,
		Current:    puzzle.Board,
		Solution:   puzzle.Solution,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return View{}, fmt.Errorf("game.Create store: %w", err)
	}

	s.log.InfoContext(ctx, "puzzle created",
		slog.String("game_id", g.ID.String()),
		slog.String("difficulty", difficulty.String()))

	return newView(g), nil
}
