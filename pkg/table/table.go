// Package table renders query results as pipe-delimited text tables.
package table

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05.999999999"
)

// NoData is rendered in place of a table when a result has no columns.
const NoData = "\n| (No data returned) |\n"

// Render lays out headers and rows as a left-aligned table. Each column is as
// wide as its widest cell, header included, measured in terminal cells:
//
//	| id | name |
//	|----|------|
//	| 1  | Ann  |
//	| 2  |      |
//
// The output starts with a newline and ends with one. Rows shorter than the
// header are padded with empty cells; extra values are ignored.
func Render(headers []string, rows [][]any) string {
	if len(headers) == 0 {
		return NoData
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[r][i] = Cell(row[i])
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cells[r][i]))
		}
	}

	var b strings.Builder
	b.WriteByte('\n')
	writeRow(&b, headers, widths)

	b.WriteString("|-")
	for i, w := range widths {
		if i > 0 {
			b.WriteString("-|-")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("-|\n")

	for _, row := range cells {
		writeRow(&b, row, widths)
	}

	return b.String()
}

func writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("| ")
	for i, v := range values {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(runewidth.FillRight(v, widths[i]))
	}
	b.WriteString(" |\n")
}

// Cell returns the display text of a single value the way SQLite would show
// it. NULL is an empty cell and BLOBs that are not valid UTF-8 are shown as
// hex literals. REAL values always keep a decimal point and times are shown
// in SQLite's date and datetime formats.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		if utf8.Valid(val) {
			return string(val)
		}
		return "x'" + hex.EncodeToString(val) + "'"
	case float64:
		return formatReal(val)
	case time.Time:
		return formatTime(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

func formatTime(t time.Time) string {
	h, m, sec := t.Clock()
	if h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}
