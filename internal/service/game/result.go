package game

import "github.com/sudokuhub/backend/internal/domain"

// View is a game together with its presentation masks.
type View struct {
	Game *domain.Game
	// Locked marks the given cells of the initial board, which the client
	// must render read-only.
	Locked domain.Mask
	Solved bool
}

// CheckResult is returned by Check: the saved view plus the error overlay.
type CheckResult struct {
	View
	// Errors marks cells where the current board disagrees with the
	// solution. All-false together with Solved=true means the puzzle is done.
	Errors domain.Mask
}

func newView(g *domain.Game) View {
	return View{
		Game:   g,
		Locked: g.Initial.Locked(),
		Solved: g.IsSolved(),
	}
}
