package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
)

// Check saves the posted edits like Save and additionally returns the error
// overlay: the mask of cells disagreeing with the solution. Checking a board
// that matches the solution records the solve.
func (s *Service) Check(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (CheckResult, error) {
	g, err := s.loadOwned(ctx, gameID)
	if err != nil {
		return CheckResult{}, fmt.Errorf("game.Check: %w", err)
	}

	if g.IsSolved() {
		return CheckResult{
			View:   newView(g),
			Errors: g.Current.Diff(g.Solution), // all false
		}, nil
	}

	current := domain.Reconcile(g.Initial, edits)
	updated, err := s.saveAndRecord(ctx, g, current)
	if err != nil {
		return CheckResult{}, fmt.Errorf("game.Check: %w", err)
	}

	return CheckResult{
		View:   newView(updated),
		Errors: updated.Current.Diff(updated.Solution),
	}, nil
}
