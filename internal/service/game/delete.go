package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Delete removes a game. Solve records are keyed independently and survive,
// so statistics keep counting puzzles whose games were deleted.
func (s *Service) Delete(ctx context.Context, gameID uuid.UUID) error {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return fmt.Errorf("game.Delete: %w", err)
	}

	if err := s.games.Delete(ctx, g.ID); err != nil {
		return fmt.Errorf("game.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "puzzle deleted", slog.String("game_id", g.ID.String()))
	return nil
}
