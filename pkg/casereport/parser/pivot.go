// Package parser locates structured regions inside report exports.
package parser

import (
	"fmt"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

const (
	// ScanLimit bounds the search for header markers, in rows.
	ScanLimit = 100
	// GrandTotalLabel terminates a pivot table.
	GrandTotalLabel = "Grand Total"
	// PivotCaption is the caption of a pivot row-label header. Decoded exports
	// lose cell styles, so the caption stands in for the pivot button flag.
	PivotCaption = "Row Labels"

	labelColumn = 0
)

// RowKind classifies a row relative to the pivot table it belongs to.
type RowKind int

const (
	// RowPreamble precedes the table, including the pivot header row itself.
	RowPreamble RowKind = iota
	// RowGroupHeader starts an agent group (indent level 0).
	RowGroupHeader
	// RowDetail belongs to the enclosing agent group.
	RowDetail
	// RowTerminator is the Grand Total row.
	RowTerminator
	// RowTrailing follows the table.
	RowTrailing
)

func (k RowKind) String() string {
	switch k {
	case RowPreamble:
		return "preamble"
	case RowGroupHeader:
		return "group-header"
	case RowDetail:
		return "detail"
	case RowTerminator:
		return "terminator"
	case RowTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// AgentRegion is one agent group of a pivot table.
type AgentRegion struct {
	Name    string
	Header  workbook.Row
	Details []workbook.Row
}

// ClassifyRows assigns a kind to every row. The result has the same length as rows.
func ClassifyRows(rows []workbook.Row) ([]RowKind, error) {
	start := -1
	for i := 0; i < len(rows) && i < ScanLimit; i++ {
		if isPivotHeader(rows[i].Cell(labelColumn)) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no pivot header within the first %d rows", caseerrors.ErrMalformedPivotStructure, ScanLimit)
	}

	kinds := make([]RowKind, len(rows))
	terminated := false
	for i := start + 1; i < len(rows); i++ {
		label := rows[i].Cell(labelColumn)
		switch {
		case terminated:
			kinds[i] = RowTrailing
		case label.Text() == GrandTotalLabel:
			kinds[i] = RowTerminator
			terminated = true
		case label.Indent == 0:
			kinds[i] = RowGroupHeader
		default:
			kinds[i] = RowDetail
		}
	}
	if !terminated {
		return nil, fmt.Errorf("%w: no %q row after the pivot header", caseerrors.ErrMalformedPivotStructure, GrandTotalLabel)
	}
	return kinds, nil
}

// ScanPivot segments the pivot table into agent regions in document order.
func ScanPivot(rows []workbook.Row) ([]AgentRegion, error) {
	kinds, err := ClassifyRows(rows)
	if err != nil {
		return nil, err
	}

	var regions []AgentRegion
	var current *AgentRegion
	for i, kind := range kinds {
		row := rows[i]
		switch kind {
		case RowGroupHeader:
			label := row.Cell(labelColumn)
			if label.Empty() {
				return nil, &caseerrors.CellError{Ref: label.Ref, Err: fmt.Errorf("%w: agent row without a name", caseerrors.ErrMalformedPivotStructure)}
			}
			if current != nil {
				regions = append(regions, *current)
			}
			current = &AgentRegion{Name: label.Text(), Header: row}
		case RowDetail:
			if current == nil {
				label := row.Cell(labelColumn)
				return nil, &caseerrors.CellError{Ref: label.Ref, Value: label.Text(), Err: fmt.Errorf("%w: detail row before any agent row", caseerrors.ErrMalformedPivotStructure)}
			}
			current.Details = append(current.Details, row)
		}
	}
	// a single-agent table has no later boundary row to flush it
	if current != nil {
		regions = append(regions, *current)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: no agent rows before %q", caseerrors.ErrMalformedPivotStructure, GrandTotalLabel)
	}
	return regions, nil
}

func isPivotHeader(c workbook.Cell) bool {
	return c.PivotButton || c.Text() == PivotCaption
}
