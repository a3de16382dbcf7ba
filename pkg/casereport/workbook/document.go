// Package workbook exposes a loaded report export as rows of addressable, formatted cells.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Format is the encoding a document was decoded from.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatHTML is an HTML table export.
	FormatHTML Format = "html"
	// FormatXLS is a legacy BIFF workbook.
	FormatXLS Format = "xls"
	// FormatCSV is delimited text.
	FormatCSV Format = "csv"
)

// Document is one report export held in memory.
//
// A document is owned by a single pipeline invocation. Reader stages call Rows;
// writer stages mutate cells in place through SetFormula and Restyle, and the
// result is persisted once with Write.
type Document struct {
	// Name is the display name used in error messages.
	Name string
	// Format is the encoding the document was decoded from.
	Format Format
	// File is the underlying workbook.
	File *excelize.File
	// Sheet is the active sheet every stage operates on.
	Sheet string

	pivotStyles map[int]bool
	styles      map[int]*excelize.Style
	registered  map[string]int
}

// New wraps f. pivotStyles holds the cell style indexes flagged as pivot buttons
// and may be nil for formats that carry no styles.
func New(f *excelize.File, name string, format Format, pivotStyles map[int]bool) *Document {
	if pivotStyles == nil {
		pivotStyles = make(map[int]bool)
	}
	return &Document{
		Name:        name,
		Format:      format,
		File:        f,
		Sheet:       f.GetSheetName(f.GetActiveSheetIndex()),
		pivotStyles: pivotStyles,
		styles:      make(map[int]*excelize.Style),
		registered:  make(map[string]int),
	}
}

// Rows reads the active sheet. Cell values are raw (dates stay serial numbers).
func (d *Document) Rows() ([]Row, error) {
	values, err := d.File.GetRows(d.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", d.Sheet, err)
	}

	rows := make([]Row, len(values))
	for rowIdx, rowValues := range values {
		rowNum := rowIdx + 1 // 1-based row index
		row := Row{Num: rowNum, Cells: make([]Cell, len(rowValues))}
		for colIdx, value := range rowValues {
			cell, err := d.readCell(colIdx+1, rowNum, value)
			if err != nil {
				return nil, err
			}
			row.Cells[colIdx] = cell
		}
		rows[rowIdx] = row
	}
	return rows, nil
}

func (d *Document) readCell(col, row int, value string) (Cell, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}
	cell := Cell{Ref: ref, Col: col, Row: row, Value: value}

	styleID, err := d.File.GetCellStyle(d.Sheet, ref)
	if err != nil {
		return Cell{}, fmt.Errorf("read style of %s: %w", ref, err)
	}
	cell.PivotButton = d.pivotStyles[styleID]

	style, err := d.style(styleID)
	if err != nil {
		return Cell{}, err
	}
	if style != nil && style.Alignment != nil {
		cell.Indent = style.Alignment.Indent
	}
	return cell, nil
}

func (d *Document) style(id int) (*excelize.Style, error) {
	if s, ok := d.styles[id]; ok {
		return s, nil
	}
	s, err := d.File.GetStyle(id)
	if err != nil {
		return nil, fmt.Errorf("read style %d: %w", id, err)
	}
	d.styles[id] = s
	return s, nil
}

// Restyle overlays apply onto the current style of ref. Attributes apply leaves
// untouched (font, protection) are kept. Derived styles are cached per key and
// base style, so repeated calls on cells sharing a style create one entry.
func (d *Document) Restyle(ref, key string, apply func(*excelize.Style)) error {
	base, err := d.File.GetCellStyle(d.Sheet, ref)
	if err != nil {
		return fmt.Errorf("read style of %s: %w", ref, err)
	}
	cacheKey := fmt.Sprintf("%s@%d", key, base)
	id, ok := d.registered[cacheKey]
	if !ok {
		current, err := d.style(base)
		if err != nil {
			return err
		}
		var merged excelize.Style
		if current != nil {
			merged = *current
		}
		apply(&merged)
		if id, err = d.File.NewStyle(&merged); err != nil {
			return fmt.Errorf("create style %s: %w", key, err)
		}
		d.registered[cacheKey] = id
	}
	if err := d.File.SetCellStyle(d.Sheet, ref, ref, id); err != nil {
		return fmt.Errorf("style %s: %w", ref, err)
	}
	return nil
}

// SetFormula writes formula (without the leading "=") into ref, keeping its style.
func (d *Document) SetFormula(ref, formula string) error {
	if err := d.File.SetCellFormula(d.Sheet, ref, formula); err != nil {
		return fmt.Errorf("write formula %s: %w", ref, err)
	}
	return nil
}

// SetValue writes a plain value into ref, keeping its style.
func (d *Document) SetValue(ref string, value interface{}) error {
	if err := d.File.SetCellValue(d.Sheet, ref, value); err != nil {
		return fmt.Errorf("write %s: %w", ref, err)
	}
	return nil
}

// Write serializes the workbook as xlsx. Formulas are recalculated when the file is opened.
func (d *Document) Write(w io.Writer) error {
	fullCalc := true
	if err := d.File.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &fullCalc}); err != nil {
		return err
	}
	return d.File.Write(w)
}

// Close releases the workbook.
func (d *Document) Close() error {
	return d.File.Close()
}
