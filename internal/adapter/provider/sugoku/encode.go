package sugoku

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sudokuhub/backend/internal/domain"
)

// EncodeBoardParam renders a board in the exact percent-encoded nested-array
// form the sugoku /solve endpoint expects: each row is a bracketed,
// comma-joined list with the commas themselves percent-encoded, rows are
// joined by an encoded comma, and the whole thing is wrapped in one more
// bracket pair. Example for a 2×2 excerpt: %5B%5B1%2C2%5D%2C%5B3%2C4%5D%5D.
func EncodeBoardParam(b domain.Board) string {
	var sb strings.Builder
	sb.WriteString("%5B")

	for i, row := range b {
		if i > 0 {
			sb.WriteString("%2C")
		}
		sb.WriteString("%5B")
		sb.WriteString(encodeRow(row))
		sb.WriteString("%5D")
	}

	sb.WriteString("%5D")
	return sb.String()
}

func encodeRow(row [domain.BoardSize]int) string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = strconv.Itoa(v)
	}
	return url.QueryEscape(strings.Join(cells, ","))
}
