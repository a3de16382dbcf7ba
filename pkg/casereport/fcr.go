package casereport

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/fcr"
	"github.com/supportops/casereport-go/pkg/casereport/loader"
	"github.com/supportops/casereport-go/pkg/casereport/metrics"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
)

const pipelineFCR = "fcr"

// CalculateFCR computes the first call resolution rate for opts.ReportDate.
//
// Records from the re-opened and closed exports are merged, keeping the newest
// record per case number. Child cases come from the parent cases report unless
// opts.ChildCaseOverride is set, in which case parent is not read.
func CalculateFCR(reopened, closed, parent Source, opts FCROptions) (result *models.FCRResult, err error) {
	start := time.Now()
	defer func() {
		metrics.PipelineDurationSeconds.WithLabelValues(pipelineFCR).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ErrorsTotal.WithLabelValues(pipelineFCR, caseerrors.Kind(err)).Inc()
		}
	}()

	records, err := extractCases(reopened, opts.ReopenedDateColumn, opts.ReportDate, true)
	if err != nil {
		return nil, err
	}
	closedRecords, err := extractCases(closed, opts.ClosedDateColumn, opts.ReportDate, false)
	if err != nil {
		return nil, err
	}
	records = append(records, closedRecords...)

	cases := fcr.Reconcile(records)
	metrics.CasesDeduplicated.Set(float64(len(cases)))
	log.Info().
		Int("records", len(records)).
		Int("cases", len(cases)).
		Str("date", opts.ReportDate.Format("2006-01-02")).
		Msg("fcr.cases.reconciled")
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w (%s)", caseerrors.ErrNoMatchingCases, opts.ReportDate.Format("2006-01-02"))
	}

	closedCases, escalatedCases := fcr.Partition(cases)

	child, err := childCases(parent, closedCases, opts)
	if err != nil {
		return nil, err
	}
	metrics.ChildCases.Set(float64(child))

	r, err := fcr.Compute(len(closedCases), len(escalatedCases), child, len(cases), opts.Denominator)
	if err != nil {
		return nil, err
	}
	metrics.Ratio.Set(r.FCR)
	log.Info().
		Float64("fcr", r.FCR).
		Int("closed", r.ClosedCaseCount).
		Int("escalated", r.EscalatedCaseCount).
		Int("child", r.ChildCaseCount).
		Int("total", r.TotalCases).
		Str("denominator", r.Denominator).
		Msg("fcr.computed")
	return &r, nil
}

func extractCases(src Source, dateColumn string, date time.Time, reopened bool) ([]models.CaseRecord, error) {
	doc, err := loader.Load(src.Reader, src.Name)
	if err != nil {
		return nil, NewReportError(src.Name, StageOpen, err)
	}
	defer doc.Close()

	records, err := parser.ExtractCases(doc, dateColumn, date, reopened)
	if err != nil {
		return nil, NewReportError(src.Name, StageParse, err)
	}

	metrics.CasesExtracted.WithLabelValues(src.Name).Add(float64(len(records)))
	log.Debug().Str("file", src.Name).Str("format", string(doc.Format)).Int("records", len(records)).Msg("fcr.cases.extracted")
	return records, nil
}

func childCases(parent Source, closedCases []models.CaseRecord, opts FCROptions) (int, error) {
	if !opts.ShouldScanSubtotals() {
		log.Info().Int("child", *opts.ChildCaseOverride).Msg("fcr.child.override")
		return *opts.ChildCaseOverride, nil
	}

	doc, err := loader.Load(parent.Reader, parent.Name)
	if err != nil {
		return 0, NewReportError(parent.Name, StageOpen, err)
	}
	defer doc.Close()

	relevant := parser.RelevantCaseNumbers(fcr.CaseNumbers(closedCases))
	child, err := parser.AggregateChildCases(doc, relevant, opts.ChildCaseThreshold, opts.Subtotals)
	if err != nil {
		return 0, NewReportError(parent.Name, StageSubtotals, err)
	}
	log.Debug().Int("child", child).Int("threshold", opts.ChildCaseThreshold).Int("relevant", len(relevant)).Msg("fcr.child.counted")
	return child, nil
}
