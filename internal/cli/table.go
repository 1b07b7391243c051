package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formats rows into aligned columns. Cell widths are measured on the
// visible text, so cells may carry ANSI styling such as colour swatches.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns a column, for numbers.
func (t *Table) AlignRight(col int) {
	t.rightAlign[col] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = t.pad(i, c, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		sb.WriteString("\n")
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)
	for _, row := range t.rows {
		writeLine(row)
	}
	return sb.String()
}

// pad fills a cell to width on the side its alignment calls for.
func (t *Table) pad(col int, s string, width int) string {
	fill := width - lipgloss.Width(s)
	if fill <= 0 {
		return s
	}
	if t.rightAlign[col] {
		return strings.Repeat(" ", fill) + s
	}
	return s + strings.Repeat(" ", fill)
}
