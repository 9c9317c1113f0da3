package domain

import (
	"time"

	"github.com/google/uuid"
)

// Game is one puzzle instance owned by exactly one user.
//
// Initial is fixed at creation and never mutated. Current starts equal to
// Initial and is rewritten by save/check/hint/reset. Solution is the full
// grid returned by the puzzle provider at creation time.
type Game struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Initial    Board
	Current    Board
	Solution   Board
	Difficulty Difficulty
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsSolved reports whether the current board matches the solution. Solving
// is terminal: once true, board-mutating operations replay Current unchanged.
func (g *Game) IsSolved() bool {
	return g.Current.Equal(g.Solution)
}

// SolveRecord is the fact "this game was solved by this user". At most one
// record exists per game; it is written the first time a solved game is
// observed and never updated afterwards. Used only for aggregation.
type SolveRecord struct {
	GameID     uuid.UUID
	UserID     uuid.UUID
	Difficulty Difficulty
	SolvedAt   time.Time
}

// LeaderboardRow is one entry of the global leaderboard.
type LeaderboardRow struct {
	Username string
	Solved   int
}
