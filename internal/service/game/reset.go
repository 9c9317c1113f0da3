package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Reset restores the current board to the initial board, discarding all user
// entries. Solved games are terminal and stay solved; reset replays them.
func (s *Service) Reset(ctx context.Context, gameID uuid.UUID) (View, error) {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("game.Reset: %w", err)
	}

	if g.IsSolved() {
		return newView(g), nil
	}

	updated, err := s.games.UpdateCurrentBoard(ctx, g.ID, g.Initial)
	if err != nil {
		return View{}, fmt.Errorf("game.Reset: %w", err)
	}

	return newView(updated), nil
}
