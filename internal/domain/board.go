package domain

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the edge length of a sudoku grid.
const BoardSize = 9

// Board is a 9×9 sudoku grid. Cell values are 0–9, where 0 means blank.
type Board [BoardSize][BoardSize]int

// Mask is a 9×9 grid of per-cell flags (locked positions, error overlays).
type Mask [BoardSize][BoardSize]bool

// DecodeBoard parses the stored textual form of a board, a JSON array of
// nine arrays of nine integers, and validates shape and value range.
// It is the inverse of Board.Encode.
func DecodeBoard(text string) (Board, error) {
	var rows [][]int
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return Board{}, fmt.Errorf("decode board: %w", err)
	}

	if len(rows) != BoardSize {
		return Board{}, fmt.Errorf("decode board: %d rows, want %d", len(rows), BoardSize)
	}

	var b Board
	for i, row := range rows {
		if len(row) != BoardSize {
			return Board{}, fmt.Errorf("decode board: row %d has %d cells, want %d", i, len(row), BoardSize)
		}
		for j, v := range row {
			if v < 0 || v > 9 {
				return Board{}, fmt.Errorf("decode board: cell (%d,%d) value %d out of range", i, j, v)
			}
			b[i][j] = v
		}
	}

	return b, nil
}

// Encode serializes the board to its storage form. DecodeBoard(b.Encode())
// returns b for every valid board.
func (b Board) Encode() string {
	rows := make([][]int, BoardSize)
	for i := range b {
		rows[i] = b[i][:]
	}
	// Marshal of [][]int cannot fail.
	text, _ := json.Marshal(rows)
	return string(text)
}

// Equal reports structural equality of two boards.
func (b Board) Equal(other Board) bool {
	return b == other
}

// Locked returns the mask of given cells: positions that were filled in the
// initial board and must never be edited.
func (b Board) Locked() Mask {
	var m Mask
	for i := range b {
		for j := range b[i] {
			m[i][j] = b[i][j] != 0
		}
	}
	return m
}

// Diff returns the mask of cells where b disagrees with solution.
func (b Board) Diff(solution Board) Mask {
	var m Mask
	for i := range b {
		for j := range b[i] {
			m[i][j] = b[i][j] != solution[i][j]
		}
	}
	return m
}

// FirstEmpty returns the first blank cell in row-major order.
func (b Board) FirstEmpty() (Cell, bool) {
	for i := range b {
		for j := range b[i] {
			if b[i][j] == 0 {
				return Cell{Row: i, Col: j}, true
			}
		}
	}
	return Cell{}, false
}

// WithHint fills the first blank cell of current from solution. A board
// without blanks is returned unchanged.
func WithHint(current, solution Board) Board {
	cell, ok := current.FirstEmpty()
	if !ok {
		return current
	}
	current[cell.Row][cell.Col] = solution[cell.Row][cell.Col]
	return current
}
