package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell addresses a single board position, zero-based.
type Cell struct {
	Row int
	Col int
}

// Key returns the wire form of the coordinate, "(row,col)". This is the key
// format the board form posts for every edited cell.
func (c Cell) Key() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ParseCellKey parses the "(row,col)" wire form. Keys that do not match the
// format, or address a position off the board, are rejected so that stray
// form fields never turn into edits.
func ParseCellKey(key string) (Cell, bool) {
	if len(key) < 5 || key[0] != '(' || key[len(key)-1] != ')' {
		return Cell{}, false
	}

	rowText, colText, ok := strings.Cut(key[1:len(key)-1], ",")
	if !ok {
		return Cell{}, false
	}

	row, err := strconv.Atoi(rowText)
	if err != nil {
		return Cell{}, false
	}
	col, err := strconv.Atoi(colText)
	if err != nil {
		return Cell{}, false
	}

	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}

// CellEdits maps a coordinate to the raw text the client submitted for it.
// Absence of a coordinate means the cell was a given and was not transmitted;
// presence with invalid text is distinct and coerces to blank.
type CellEdits map[Cell]string

// Reconcile merges posted edits over the initial board and returns the
// resulting current board. For each position:
//
//   - no entry in edits: the cell is a given, copied from initial
//     unconditionally (givens are immutable even if the client lies);
//   - entry that is not exactly one decimal digit: coerced to 0 (blank);
//   - entry that is a single digit: parsed and stored.
//
// Reconcile is total: any edits map yields a structurally valid board.
func Reconcile(initial Board, edits CellEdits) Board {
	var current Board
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			raw, posted := edits[Cell{Row: i, Col: j}]
			switch {
			case !posted:
				current[i][j] = initial[i][j]
			case len(raw) != 1 || raw[0] < '0' || raw[0] > '9':
				current[i][j] = 0
			default:
				current[i][j] = int(raw[0] - '0')
			}
		}
	}
	return current
}
