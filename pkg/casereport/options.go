// Package casereport computes first call resolution and formats case reports
// from call-center report exports.
package casereport

import (
	"io"
	"time"

	"github.com/supportops/casereport-go/pkg/casereport/config"
	"github.com/supportops/casereport-go/pkg/casereport/fcr"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
)

// Display names of the report exports, used in error messages.
const (
	ReopenedReport    = "Re-opened Report"
	ClosedReport      = "Closed Report"
	ParentCasesReport = "Parent Cases Report"
	CaseReport        = "Case Report"
)

// Source is a report export and the name shown to the user for it.
type Source struct {
	Name   string
	Reader io.Reader
}

// FCROptions configures CalculateFCR.
type FCROptions struct {
	// ReportDate selects the cases whose date column falls on this day.
	ReportDate time.Time
	// ChildCaseThreshold is the minimum Subtotal count that counts.
	ChildCaseThreshold int
	// ChildCaseOverride replaces the Subtotal scan when non-nil.
	ChildCaseOverride *int
	// Denominator selects the FCR denominator.
	Denominator fcr.Denominator
	// Subtotals locates the Subtotal column of the parent cases report.
	Subtotals parser.SubtotalOptions
	// ReopenedDateColumn is the date column of the re-opened export.
	ReopenedDateColumn string
	// ClosedDateColumn is the date column of the closed export.
	ClosedDateColumn string
}

// DefaultFCROptions returns the built-in options for reportDate.
func DefaultFCROptions(reportDate time.Time) FCROptions {
	opts, _ := NewFCROptions(config.Default(), reportDate)
	return opts
}

// NewFCROptions derives options from cfg.
func NewFCROptions(cfg *config.Config, reportDate time.Time) (FCROptions, error) {
	denominator, err := fcr.ParseDenominator(cfg.Denominator)
	if err != nil {
		return FCROptions{}, err
	}
	return FCROptions{
		ReportDate:         reportDate,
		ChildCaseThreshold: cfg.ChildCaseThreshold,
		Denominator:        denominator,
		Subtotals:          parser.SubtotalOptions{Offset: cfg.SubtotalOffset},
		ReopenedDateColumn: cfg.ReopenedDateColumn,
		ClosedDateColumn:   cfg.ClosedDateColumn,
	}, nil
}

// ShouldScanSubtotals returns whether the parent cases report is read.
func (o FCROptions) ShouldScanSubtotals() bool {
	return o.ChildCaseOverride == nil
}

// FormatOptions configures FormatCaseReport.
type FormatOptions struct {
	// RunAt is stamped into the report title.
	RunAt time.Time
	// Weights resolves pivot status labels.
	Weights models.FollowUpWeightMap
	// Thresholds colors agent averages.
	Thresholds models.ThresholdBand
}

// NewFormatOptions derives options from cfg.
func NewFormatOptions(cfg *config.Config, runAt time.Time) (FormatOptions, error) {
	if err := cfg.Validate(); err != nil {
		return FormatOptions{}, err
	}
	weights, err := cfg.WeightMap()
	if err != nil {
		return FormatOptions{}, err
	}
	return FormatOptions{
		RunAt:      runAt,
		Weights:    weights,
		Thresholds: cfg.Thresholds,
	}, nil
}
