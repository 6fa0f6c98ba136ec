package cli

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MissingValue is printed for NaN and infinite metrics.
const MissingValue = "—"

// Table formats aligned numeric columns. The first column is left-aligned,
// the rest are right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row of pre-formatted cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table with a styled header line.
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(formatRow(t.Headers, widths)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString(formatRow(row, widths))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))

	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		pad := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if i == 0 {
			parts[i] = cell + pad
		} else {
			parts[i] = pad + cell
		}
	}

	return strings.Join(parts, "  ")
}

// FormatMetric formats v with the given number of decimals.
func FormatMetric(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingValue
	}

	return fmt.Sprintf("%.*f", decimals, v)
}

// FormatSigned formats v with an explicit sign.
func FormatSigned(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingValue
	}

	return fmt.Sprintf("%+.*f", decimals, v)
}

// FormatFrequency prints Hz below 1 kHz and kHz above.
func FormatFrequency(hz float64) string {
	if hz >= 1000 {
		return FormatMetric(hz/1000, 2) + " kHz"
	}

	return FormatMetric(hz, 1) + " Hz"
}
