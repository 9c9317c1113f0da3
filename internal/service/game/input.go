package game

import (
	"github.com/sudokuhub/backend/internal/domain"
)

// CreateInput holds parameters for puzzle creation.
type CreateInput struct {
	Difficulty string
}

// Validate checks the difficulty value.
func (i CreateInput) Validate() error {
	if !domain.Difficulty(i.Difficulty).IsValid() {
		return domain.NewValidationError("difficulty", "must be one of easy, medium, hard")
	}
	return nil
}

// ListInput holds parameters for listing a user's puzzles.
type ListInput struct {
	Difficulty string // empty means all difficulties
}

// Validate checks the optional difficulty filter.
func (i ListInput) Validate() error {
	if i.Difficulty != "" && !domain.Difficulty(i.Difficulty).IsValid() {
		return domain.NewValidationError("difficulty", "must be one of easy, medium, hard")
	}
	return nil
}
