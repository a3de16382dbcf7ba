// Package metrics provides Prometheus metrics for report runs.
// Runs are batch jobs, so metrics are pushed to a Pushgateway rather than scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry is the custom prometheus registry for report runs
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// =============================================================================
// FCR PIPELINE
// =============================================================================

// CasesExtracted counts case records kept by the date filter, by source export.
var CasesExtracted = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fcr",
	Name:      "cases_extracted_total",
	Help:      "Case records matching the report date, by source export",
}, []string{"source"})

// CasesDeduplicated is the number of distinct cases after reconciliation.
var CasesDeduplicated = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fcr",
	Name:      "cases_deduplicated",
	Help:      "Distinct cases after keeping the newest record per case number",
})

// ChildCases is the child case count used by the last run.
var ChildCases = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fcr",
	Name:      "child_cases",
	Help:      "Child cases subtracted from closed cases",
})

// Ratio is the last computed first call resolution rate.
var Ratio = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fcr",
	Name:      "ratio",
	Help:      "Last computed first call resolution rate",
})

// =============================================================================
// CASE REPORT PIPELINE
// =============================================================================

// RowsScanned counts sheet rows read by the pivot scanner.
var RowsScanned = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "report",
	Name:      "rows_scanned_total",
	Help:      "Rows read from case report sheets",
})

// AgentsProcessed counts agents colored, by threshold band.
var AgentsProcessed = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "report",
	Name:      "agents_processed_total",
	Help:      "Agents whose average cycles were written, by band",
}, []string{"band"})

// =============================================================================
// SHARED
// =============================================================================

// PipelineDurationSeconds tracks pipeline run time.
var PipelineDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "casereport",
	Name:      "pipeline_duration_seconds",
	Help:      "Time taken by a pipeline run",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
}, []string{"pipeline"})

// ErrorsTotal counts failed runs by error kind.
var ErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "casereport",
	Name:      "errors_total",
	Help:      "Failed pipeline runs by error kind",
}, []string{"pipeline", "kind"})

// Push sends the registry to a Pushgateway under job.
func Push(url, job string) error {
	return push.New(url, job).Gatherer(Registry).Push()
}
