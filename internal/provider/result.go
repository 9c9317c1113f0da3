// Package provider defines provider-neutral result types returned by
// outbound puzzle-source adapters.
package provider

import "github.com/sudokuhub/backend/internal/domain"

// GeneratedPuzzle is a freshly generated puzzle together with its solution.
type GeneratedPuzzle struct {
	Board      domain.Board
	Solution   domain.Board
	Difficulty domain.Difficulty
}
