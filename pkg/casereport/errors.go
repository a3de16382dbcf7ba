package casereport

import (
	"fmt"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
)

// Error kinds, re-exported for callers matching with errors.Is.
var (
	ErrUnsupportedFileFormat   = caseerrors.ErrUnsupportedFileFormat
	ErrMissingColumn           = caseerrors.ErrMissingColumn
	ErrUnrecognizedStatusLabel = caseerrors.ErrUnrecognizedStatusLabel
	ErrMalformedPivotStructure = caseerrors.ErrMalformedPivotStructure
	ErrMalformedDate           = caseerrors.ErrMalformedDate
	ErrMalformedFlag           = caseerrors.ErrMalformedFlag
	ErrMalformedSubtotal       = caseerrors.ErrMalformedSubtotal
	ErrMissingReportTitle      = caseerrors.ErrMissingReportTitle
	ErrNoMatchingCases         = caseerrors.ErrNoMatchingCases
	ErrDivisionByZero          = caseerrors.ErrDivisionByZero
	ErrInvalidConfig           = caseerrors.ErrInvalidConfig
)

// Stages name what was being done to a file when it failed.
const (
	StageOpen      = "open"
	StageParse     = "parse columns for"
	StageSubtotals = "read subtotals in"
	StageFormat    = "format"
)

// ReportError is the user-facing failure of a pipeline on one input file.
type ReportError struct {
	File  string
	Stage string
	Err   error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("Unable to %s %s file; is it in the right format? (%v)", e.Stage, e.File, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError.
func NewReportError(file, stage string, err error) *ReportError {
	return &ReportError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
