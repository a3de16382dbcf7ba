// Package errors defines the error kinds raised while interpreting report exports.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is; every stage wraps them with %w.
var (
	ErrUnsupportedFileFormat   = fmt.Errorf("unsupported file format")
	ErrMissingColumn           = fmt.Errorf("missing column")
	ErrUnrecognizedStatusLabel = fmt.Errorf("unrecognized status label")
	ErrMalformedPivotStructure = fmt.Errorf("malformed pivot structure")
	ErrMalformedDate           = fmt.Errorf("malformed date")
	ErrMalformedFlag           = fmt.Errorf("malformed flag")
	ErrMalformedSubtotal       = fmt.Errorf("malformed subtotal")
	ErrMissingReportTitle      = fmt.Errorf("missing report title")
	ErrNoMatchingCases         = fmt.Errorf("no cases found for the given report date")
	ErrDivisionByZero          = fmt.Errorf("division by zero")
	ErrInvalidConfig           = fmt.Errorf("invalid configuration")
)

// CellError wraps an error kind with the coordinate of the cell that produced it.
type CellError struct {
	Ref   string
	Value string
	Err   error
}

func (e *CellError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("cell %s: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("cell %s: %v (value: %q)", e.Ref, e.Err, e.Value)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// Kind returns a short metric label for the error kind wrapped by err.
func Kind(err error) string {
	for _, k := range []struct {
		err  error
		name string
	}{
		{ErrUnsupportedFileFormat, "unsupported_file_format"},
		{ErrMissingColumn, "missing_column"},
		{ErrUnrecognizedStatusLabel, "unrecognized_status_label"},
		{ErrMalformedPivotStructure, "malformed_pivot_structure"},
		{ErrMalformedDate, "malformed_date"},
		{ErrMalformedFlag, "malformed_flag"},
		{ErrMalformedSubtotal, "malformed_subtotal"},
		{ErrMissingReportTitle, "missing_report_title"},
		{ErrNoMatchingCases, "no_matching_cases"},
		{ErrDivisionByZero, "division_by_zero"},
		{ErrInvalidConfig, "invalid_config"},
	} {
		if stderrors.Is(err, k.err) {
			return k.name
		}
	}
	return "other"
}
