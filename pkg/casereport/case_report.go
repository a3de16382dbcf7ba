package casereport

import (
	"time"

	"github.com/rs/zerolog/log"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/loader"
	"github.com/supportops/casereport-go/pkg/casereport/metrics"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
	"github.com/supportops/casereport-go/pkg/casereport/report"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

const pipelineFormat = "format"

// FormatCaseReport stamps the runtime into the report title, writes the cycle,
// weight and average formulas of the pivot table and colors each agent average.
//
// The returned document holds every change and is owned by the caller, who
// persists and closes it. On error nothing is returned.
func FormatCaseReport(src Source, opts FormatOptions) (doc *workbook.Document, summary *models.CaseReportSummary, err error) {
	start := time.Now()
	defer func() {
		metrics.PipelineDurationSeconds.WithLabelValues(pipelineFormat).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ErrorsTotal.WithLabelValues(pipelineFormat, caseerrors.Kind(err)).Inc()
		}
	}()

	doc, err = loader.Load(src.Reader, src.Name)
	if err != nil {
		return nil, nil, NewReportError(src.Name, StageOpen, err)
	}

	agents, err := formatDocument(doc, opts)
	if err != nil {
		doc.Close()
		return nil, nil, NewReportError(src.Name, StageFormat, err)
	}

	summary = &models.CaseReportSummary{
		BookName:  src.Name,
		SheetName: doc.Sheet,
		RunAt:     opts.RunAt,
		Agents:    agents,
	}
	log.Info().Str("file", src.Name).Str("sheet", doc.Sheet).Int("agents", len(agents)).Msg("report.formatted")
	return doc, summary, nil
}

// formatDocument runs the writer stages in order on doc.
func formatDocument(doc *workbook.Document, opts FormatOptions) ([]models.AgentAggregate, error) {
	title, err := report.StampRuntime(doc, opts.RunAt)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("title", title).Msg("report.runtime.stamped")

	rows, err := doc.Rows()
	if err != nil {
		return nil, err
	}
	metrics.RowsScanned.Add(float64(len(rows)))

	regions, err := parser.ScanPivot(rows)
	if err != nil {
		return nil, err
	}
	aggregates, err := report.DeriveCycles(doc, regions, opts.Weights)
	if err != nil {
		return nil, err
	}
	agents, err := report.Colorize(doc, regions, aggregates, opts.Thresholds)
	if err != nil {
		return nil, err
	}

	for _, a := range agents {
		metrics.AgentsProcessed.WithLabelValues(a.Band).Inc()
		log.Debug().
			Str("agent", a.AgentName).
			Int("rows", a.RowCount).
			Float64("average_cycles", a.AverageCycles).
			Str("band", a.Band).
			Msg("report.agent.colored")
	}
	return agents, nil
}
