package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleBoard returns a valid full-ish board used across tests.
func sampleBoard() Board {
	var b Board
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			b[i][j] = (i*3 + i/3 + j) % 9
		}
	}
	return b
}

func TestBoard_EncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	boards := []Board{
		{}, // all blanks
		sampleBoard(),
	}
	full := sampleBoard()
	for i := range full {
		for j := range full[i] {
			full[i][j] = full[i][j]%9 + 1
		}
	}
	boards = append(boards, full)

	for _, b := range boards {
		got, err := DecodeBoard(b.Encode())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestDecodeBoard_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"not json", "oops"},
		{"wrong row count", "[[0,0,0,0,0,0,0,0,0]]"},
		{"short row", `[[1],[],[],[],[],[],[],[],[]]`},
		{"value too large", `[[10,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0]]`},
		{"negative value", `[[-1,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0,0]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeBoard(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestBoard_Locked(t *testing.T) {
	t.Parallel()

	var b Board
	b[0][0] = 5
	b[4][7] = 1
	b[8][8] = 9

	m := b.Locked()
	for i := range b {
		for j := range b[i] {
			assert.Equal(t, b[i][j] != 0, m[i][j], "cell (%d,%d)", i, j)
		}
	}
}

func TestBoard_Diff(t *testing.T) {
	t.Parallel()

	sol := sampleBoard()

	t.Run("identical boards have no errors", func(t *testing.T) {
		m := sol.Diff(sol)
		assert.Equal(t, Mask{}, m)
	})

	t.Run("every mismatch is flagged", func(t *testing.T) {
		cur := sol
		cur[0][0] = (cur[0][0] + 1) % 10
		cur[5][3] = (cur[5][3] + 2) % 10

		m := cur.Diff(sol)
		for i := range cur {
			for j := range cur[i] {
				assert.Equal(t, cur[i][j] != sol[i][j], m[i][j], "cell (%d,%d)", i, j)
			}
		}
	})
}

func TestWithHint(t *testing.T) {
	t.Parallel()

	sol := sampleBoard()
	for i := range sol {
		for j := range sol[i] {
			sol[i][j] = sol[i][j]%9 + 1
		}
	}

	t.Run("fills first blank in row-major order", func(t *testing.T) {
		cur := sol
		cur[0][3] = 0
		cur[2][1] = 0

		got := WithHint(cur, sol)

		assert.Equal(t, sol[0][3], got[0][3])
		assert.Zero(t, got[2][1], "only the first blank is filled")

		// Exactly one cell changed.
		diffs := 0
		for i := range got {
			for j := range got[i] {
				if got[i][j] != cur[i][j] {
					diffs++
				}
			}
		}
		assert.Equal(t, 1, diffs)
	})

	t.Run("full board is returned unchanged", func(t *testing.T) {
		got := WithHint(sol, sol)
		assert.Equal(t, sol, got)
	})
}

func TestBoard_FirstEmpty(t *testing.T) {
	t.Parallel()

	var b Board
	for i := range b {
		for j := range b[i] {
			b[i][j] = 1
		}
	}
	_, ok := b.FirstEmpty()
	assert.False(t, ok)

	b[3][6] = 0
	b[7][0] = 0
	cell, ok := b.FirstEmpty()
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 3, Col: 6}, cell)
}
