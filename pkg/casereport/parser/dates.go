package parser

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// ParseCellDate reads a date cell. Numeric values are spreadsheet serial dates
// (1900 system); text is parsed month-first without a fixed layout.
func ParseCellDate(c workbook.Cell) (time.Time, error) {
	if c.Empty() {
		return time.Time{}, &caseerrors.CellError{Ref: c.Ref, Err: fmt.Errorf("%w: empty date", caseerrors.ErrMalformedDate)}
	}
	if serial, ok := c.Number(); ok {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, &caseerrors.CellError{Ref: c.Ref, Value: c.Text(), Err: fmt.Errorf("%w: %v", caseerrors.ErrMalformedDate, err)}
		}
		return t, nil
	}
	t, err := dateparse.ParseIn(c.Text(), time.UTC)
	if err != nil {
		return time.Time{}, &caseerrors.CellError{Ref: c.Ref, Value: c.Text(), Err: fmt.Errorf("%w: %v", caseerrors.ErrMalformedDate, err)}
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar date, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
