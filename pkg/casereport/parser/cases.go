package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// Column names of the flat case-list exports.
const (
	ColumnCaseNumber   = "Case Number"
	ColumnCaseOwner    = "Case Owner"
	ColumnStatus       = "Status"
	ColumnOpen         = "Open"
	ColumnClosed       = "Closed"
	ColumnWasEscalated = "Was Escalated"

	// ColumnEditDate is the date column of the re-opened export.
	ColumnEditDate = "Edit Date"
	// ColumnDateOpened is the date column of the closed export.
	ColumnDateOpened = "Date/Time Opened"
)

type caseColumns struct {
	date, number, owner, status, open, closed, escalated int
}

// ExtractCases reads a case list whose first row is the header and returns
// the records whose dateColumn falls on target's calendar date.
func ExtractCases(doc *workbook.Document, dateColumn string, target time.Time, reopened bool) ([]models.CaseRecord, error) {
	rows, err := doc.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q: sheet has no header row", caseerrors.ErrMissingColumn, dateColumn)
	}

	cols, err := mapColumns(rows[0], dateColumn)
	if err != nil {
		return nil, err
	}

	var records []models.CaseRecord
	for _, row := range rows[1:] {
		if row.Blank() {
			continue
		}
		when, err := ParseCellDate(row.Cell(cols.date))
		if err != nil {
			return nil, err
		}
		if !SameDay(when, target) {
			continue
		}

		rec := models.CaseRecord{
			DateTime:   when,
			CaseNumber: CanonicalCaseNumber(row.Cell(cols.number).Text()),
			CaseOwner:  row.Cell(cols.owner).Text(),
			Status:     row.Cell(cols.status).Text(),
			IsReopened: reopened,
		}
		if rec.IsOpen, err = parseFlag(row.Cell(cols.open)); err != nil {
			return nil, err
		}
		if rec.IsClosed, err = parseFlag(row.Cell(cols.closed)); err != nil {
			return nil, err
		}
		if rec.WasEscalated, err = parseFlag(row.Cell(cols.escalated)); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func mapColumns(header workbook.Row, dateColumn string) (caseColumns, error) {
	index := make(map[string]int, len(header.Cells))
	for i, c := range header.Cells {
		name := c.Text()
		if _, seen := index[name]; !seen && name != "" {
			index[name] = i
		}
	}

	lookup := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", caseerrors.ErrMissingColumn, name)
		}
		return i, nil
	}

	var cols caseColumns
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{dateColumn, &cols.date},
		{ColumnCaseNumber, &cols.number},
		{ColumnCaseOwner, &cols.owner},
		{ColumnStatus, &cols.status},
		{ColumnOpen, &cols.open},
		{ColumnClosed, &cols.closed},
		{ColumnWasEscalated, &cols.escalated},
	} {
		i, err := lookup(f.name)
		if err != nil {
			return caseColumns{}, err
		}
		*f.dst = i
	}
	return cols, nil
}

// parseFlag applies integer truthiness to a 0/1 cell.
func parseFlag(c workbook.Cell) (bool, error) {
	if n, ok := c.Number(); ok {
		return math.Trunc(n) != 0, nil
	}
	switch strings.ToUpper(c.Text()) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, &caseerrors.CellError{Ref: c.Ref, Value: c.Text(), Err: caseerrors.ErrMalformedFlag}
}

// CanonicalCaseNumber renders numeric case numbers as integers so that
// "00012345", "12345" and "12345.0" share one key. Other values are trimmed.
func CanonicalCaseNumber(s string) string {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return s
	}
	return strconv.FormatFloat(f, 'f', 0, 64)
}
