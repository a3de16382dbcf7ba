package workbook

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell is a single cell of a document row.
type Cell struct {
	// Ref is the A1 coordinate, usable inside formula strings.
	Ref string
	// Col is the column index (1-based).
	Col int
	// Row is the row index (1-based).
	Row int
	// Value is the raw cell value.
	Value string
	// Indent is the alignment indent level.
	Indent int
	// PivotButton reports whether the cell style carries the pivot button flag.
	PivotButton bool
}

// Text returns the trimmed value.
func (c Cell) Text() string {
	return strings.TrimSpace(c.Value)
}

// Empty reports whether the cell has no visible value.
func (c Cell) Empty() bool {
	return c.Text() == ""
}

// Number parses the value as a float.
func (c Cell) Number() (float64, bool) {
	f, err := strconv.ParseFloat(c.Text(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Row is one sheet row. Trailing empty cells may be absent from Cells.
type Row struct {
	// Num is the row index (1-based).
	Num int
	// Cells holds the cells that were present in the sheet.
	Cells []Cell
}

// Index returns the 0-based row index.
func (r Row) Index() int {
	return r.Num - 1
}

// Cell returns the cell at the 0-based column, or an empty addressable cell.
func (r Row) Cell(col int) Cell {
	if col >= 0 && col < len(r.Cells) {
		return r.Cells[col]
	}
	ref, _ := excelize.CoordinatesToCellName(col+1, r.Num)
	return Cell{Ref: ref, Col: col + 1, Row: r.Num}
}

// Blank reports whether every cell of the row is empty.
func (r Row) Blank() bool {
	for _, c := range r.Cells {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func ParseValue(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	// Try integer first
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
