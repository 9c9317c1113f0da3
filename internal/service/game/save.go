package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
)

// Save reconciles the posted cell edits against the game's initial board and
// persists the result as the new current board. A solved game is never
// rewritten: the stored board is replayed unchanged.
func (s *Service) Save(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (View, error) {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("game.Save: %w", err)
	}

	if g.IsSolved() {
		return newView(g), nil
	}

	current := domain.Reconcile(g.Initial, edits)
	updated, err := s.saveAndRecord(ctx, g, current)
	if err != nil {
		return View{}, fmt.Errorf("game.Save: %w", err)
	}

	return newView(updated), nil
}
