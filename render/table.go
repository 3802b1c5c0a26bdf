// Package render produces the plain-text blocks shown in the CLI and the
// chat relay: fixed-width tables, compact score formatting and word
// wrapping.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table collects rows and renders them with every column padded to its
// widest cell. Columns without an explicit alignment are left-aligned.
type Table struct {
	headers    []string
	rows       [][]string
	alignments []Alignment
}

func NewTable(headers ...string) *Table {
	return &Table{
		headers:    headers,
		alignments: make([]Alignment, len(headers)),
	}
}

// Align sets the alignment of one column. Out-of-range columns are
// ignored.
func (t *Table) Align(col int, a Alignment) *Table {
	if col >= 0 && col < len(t.alignments) {
		t.alignments[col] = a
	}
	return t
}

// AddRow accepts any values and stringifies them. Missing cells render
// empty, extra cells are dropped.
func (t *Table) AddRow(cells ...any) {
	row := make([]string, len(t.headers))
	for i := 0; i < len(row) && i < len(cells); i++ {
		row[i] = fmt.Sprintf("%v", cells[i])
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	t.writeRow(&b, t.headers, widths)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

func (t *Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString("  ")
		}
		pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		if t.alignments[i] == AlignRight {
			line.WriteString(pad)
			line.WriteString(cell)
			continue
		}
		line.WriteString(cell)
		line.WriteString(pad)
	}
	// Pad everything first, then trim so lines never end in spaces,
	// even when the trailing cells are empty.
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteString("\n")
}
