package game

import (
	"context"
	"fmt"

	gamerepo "github.com/sudokuhub/backend/internal/adapter/postgres/game"
	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/pkg/ctxutil"
)

// List returns the context user's games, newest first, optionally filtered
// by difficulty.
func (s *Service) List(ctx context.Context, input ListInput) ([]View, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var filter gamerepo.ListFilter
	if input.Difficulty != "" {
		difficulty := domain.Difficulty(input.Difficulty)
		filter.Difficulty = &difficulty
	}

	games, err := s.games.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("game.List: %w", err)
	}

	views := make([]View, 0, len(games))
	for _, g := range games {
		views = append(views, newView(g))
	}
	return views, nil
}
