package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
)

// Hint reconciles the posted edits, then fills the first blank cell (in
// row-major order) from the solution and persists the result. A hint that
// fills the last blank completes the puzzle and records the solve. Solved
// games replay unchanged.
func (s *Service) Hint(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (View, error) {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("game.Hint: %w", err)
	}

	if g.IsSolved() {
		return newView(g), nil
	}

	current := domain.WithHint(domain.Reconcile(g.Initial, edits), g.Solution)
	updated, err := s.saveAndRecord(ctx, g, current)
	if err != nil {
		return View{}, fmt.Errorf("game.Hint: %w", err)
	}

	return newView(updated), nil
}
