package report

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/loader"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
	"github.com/supportops/casereport-go/pkg/casereport/workbook/workbooktest"
)

var band = models.ThresholdBand{
	Levels: []models.ThresholdLevel{
		{Name: "outstanding", Max: 1.0, Color: "#92D050"},
		{Name: "exceeds", Max: 1.2, Color: "#FFFF00"},
		{Name: "competent", Max: 2.0, Color: "#FFC000"},
	},
	Default: models.ThresholdLevel{Name: "needs-improvement", Color: "#FF0000"},
}

func weights(t *testing.T) models.FollowUpWeightMap {
	t.Helper()
	m, err := models.NewFollowUpWeightMap([]models.FollowUpWeightEntry{
		{Label: "new", FollowUp: 1, Weight: 2},
		{Label: "working", FollowUp: 7, Weight: 1.25},
		{Label: "waiting on customer", FollowUp: 2, Weight: 1.75},
	})
	require.NoError(t, err)
	return m
}

func loadReport(t *testing.T, report workbooktest.CaseReport) (*workbook.Document, []parser.AgentRegion) {
	t.Helper()
	doc, err := loader.Load(bytes.NewReader(report.Build(t)), "Case Report.xlsx")
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })

	rows, err := doc.Rows()
	require.NoError(t, err)
	regions, err := parser.ScanPivot(rows)
	require.NoError(t, err)
	return doc, regions
}

func smithReport() workbooktest.CaseReport {
	return workbooktest.CaseReport{
		PivotButton: true,
		Agents: []workbooktest.Agent{
			{Name: "Smith", Details: []workbooktest.Detail{{Status: "New", Age: 2}, {Status: " NEW ", Age: 4}}},
		},
	}
}

func calc(t *testing.T, doc *workbook.Document, ref string) float64 {
	t.Helper()
	value, err := doc.File.CalcCellValue(doc.Sheet, ref, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	f, err := strconv.ParseFloat(value, 64)
	require.NoError(t, err)
	return f
}

func TestDeriveCycles(t *testing.T) {
	doc, regions := loadReport(t, smithReport())

	aggregates, err := DeriveCycles(doc, regions, weights(t))
	require.NoError(t, err)

	require.Contains(t, aggregates, "Smith")
	assert.Equal(t, 2, aggregates["Smith"].RowCount)
	assert.Equal(t, 6.0, aggregates["Smith"].AverageCycles)

	formula, err := doc.File.GetCellFormula(doc.Sheet, "D5")
	require.NoError(t, err)
	assert.Equal(t, "B5/1", formula)
	formula, err = doc.File.GetCellFormula(doc.Sheet, "E6")
	require.NoError(t, err)
	assert.Equal(t, "D6*2", formula)

	assert.InDelta(t, 2.0, calc(t, doc, "D5"), 1e-9)
	assert.InDelta(t, 4.0, calc(t, doc, "E5"), 1e-9)
	assert.InDelta(t, 4.0, calc(t, doc, "D6"), 1e-9)
	assert.InDelta(t, 8.0, calc(t, doc, "E6"), 1e-9)

	styleID, err := doc.File.GetCellStyle(doc.Sheet, "D5")
	require.NoError(t, err)
	style, err := doc.File.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, numFmtTwoDecimals, style.NumFmt)
	assert.Equal(t, "center", style.Alignment.Horizontal)
}

func TestDeriveCyclesBlanksAgentRow(t *testing.T) {
	doc, regions := loadReport(t, smithReport())

	_, err := DeriveCycles(doc, regions, weights(t))
	require.NoError(t, err)

	for _, ref := range []string{"D4", "E4"} {
		styleID, err := doc.File.GetCellStyle(doc.Sheet, ref)
		require.NoError(t, err)
		style, err := doc.File.GetStyle(styleID)
		require.NoError(t, err)
		assert.Equal(t, 1, style.Fill.Pattern, ref)
	}
}

func TestDeriveCyclesUnrecognizedLabel(t *testing.T) {
	doc, regions := loadReport(t, workbooktest.CaseReport{
		PivotButton: true,
		Agents: []workbooktest.Agent{
			{Name: "Smith", Details: []workbooktest.Detail{{Status: "Pending Vendor", Age: 2}}},
		},
	})

	_, err := DeriveCycles(doc, regions, weights(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, caseerrors.ErrUnrecognizedStatusLabel))
	assert.Contains(t, err.Error(), "Pending Vendor")
	assert.Contains(t, err.Error(), "A5")
}

func TestDeriveCyclesNonNumericAge(t *testing.T) {
	doc, _ := loadReport(t, smithReport())
	regions := []parser.AgentRegion{{
		Name:   "Smith",
		Header: workbook.Row{Num: 4},
		Details: []workbook.Row{{Num: 5, Cells: []workbook.Cell{
			{Ref: "A5", Col: 1, Row: 5, Value: "New"},
			{Ref: "B5", Col: 2, Row: 5, Value: "n/a"},
		}}},
	}}

	_, err := DeriveCycles(doc, regions, weights(t))
	assert.True(t, errors.Is(err, caseerrors.ErrMalformedPivotStructure))
}

func TestDeriveCyclesSkipsEmptyAgent(t *testing.T) {
	doc, regions := loadReport(t, workbooktest.CaseReport{
		PivotButton: true,
		Agents: []workbooktest.Agent{
			{Name: "Smith"},
			{Name: "Jones", Details: []workbooktest.Detail{{Status: "Working", Age: 7}}},
		},
	})

	aggregates, err := DeriveCycles(doc, regions, weights(t))
	require.NoError(t, err)
	assert.NotContains(t, aggregates, "Smith")
	assert.Equal(t, 1.25, aggregates["Jones"].AverageCycles)

	colored, err := Colorize(doc, regions, aggregates, band)
	require.NoError(t, err)
	require.Len(t, colored, 1)
	assert.Equal(t, "Jones", colored[0].AgentName)
	assert.Equal(t, "competent", colored[0].Band)
	assert.Equal(t, "FFFFC000", colored[0].Color)
	assert.Equal(t, "F6", colored[0].AverageCell)
}

func TestDeriveCyclesWithoutDetailRows(t *testing.T) {
	doc, regions := loadReport(t, workbooktest.CaseReport{
		PivotButton: true,
		Agents:      []workbooktest.Agent{{Name: "Smith"}, {Name: "Jones"}},
	})

	_, err := DeriveCycles(doc, regions, weights(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, caseerrors.ErrMalformedPivotStructure))
}

func TestColorize(t *testing.T) {
	doc, regions := loadReport(t, smithReport())
	aggregates, err := DeriveCycles(doc, regions, weights(t))
	require.NoError(t, err)

	colored, err := Colorize(doc, regions, aggregates, band)
	require.NoError(t, err)
	require.Len(t, colored, 1)

	smith := colored[0]
	assert.Equal(t, "needs-improvement", smith.Band)
	assert.Equal(t, "FFFF0000", smith.Color)
	assert.Equal(t, "F5", smith.AverageCell)

	formula, err := doc.File.GetCellFormula(doc.Sheet, "F5")
	require.NoError(t, err)
	assert.Equal(t, "AVERAGE(E5:E6)", formula)
	assert.InDelta(t, smith.AverageCycles, calc(t, doc, "F5"), 0.01)

	styleID, err := doc.File.GetCellStyle(doc.Sheet, "F5")
	require.NoError(t, err)
	style, err := doc.File.GetStyle(styleID)
	require.NoError(t, err)
	assert.Len(t, style.Border, 4)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.Equal(t, 1, style.Fill.Pattern)
}

func TestColorizeRoundTripAcrossAgents(t *testing.T) {
	doc, regions := loadReport(t, workbooktest.CaseReport{
		PivotButton: true,
		Agents: []workbooktest.Agent{
			{Name: "Smith", Details: []workbooktest.Detail{
				{Status: "Waiting on Customer", Age: 1},
				{Status: "Working", Age: 3},
				{Status: "New", Age: 0.5},
			}},
			{Name: "Jones", Details: []workbooktest.Detail{{Status: "Waiting on Customer", Age: 1}}},
		},
	})
	aggregates, err := DeriveCycles(doc, regions, weights(t))
	require.NoError(t, err)

	colored, err := Colorize(doc, regions, aggregates, band)
	require.NoError(t, err)
	require.Len(t, colored, 2)
	for _, agg := range colored {
		assert.InDelta(t, agg.AverageCycles, calc(t, doc, agg.AverageCell), 0.01, agg.AgentName)
	}
	// 1/2*1.75 = 0.875
	assert.Equal(t, "outstanding", colored[1].Band)
	assert.Equal(t, "F9", colored[1].AverageCell)
}

func TestColorizeMissingAggregate(t *testing.T) {
	doc, regions := loadReport(t, smithReport())

	_, err := Colorize(doc, regions, map[string]models.AgentAggregate{}, band)
	assert.True(t, errors.Is(err, caseerrors.ErrMalformedPivotStructure))
}

func TestColorizeRowCountMismatch(t *testing.T) {
	doc, regions := loadReport(t, smithReport())
	aggregates := map[string]models.AgentAggregate{"Smith": {AgentName: "Smith", RowCount: 3, AverageCycles: 1}}

	_, err := Colorize(doc, regions, aggregates, band)
	assert.True(t, errors.Is(err, caseerrors.ErrMalformedPivotStructure))
}

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, 0.12, RoundHalfEven(0.125, 2))
	assert.Equal(t, 0.38, RoundHalfEven(0.375, 2))
	assert.Equal(t, 6.0, RoundHalfEven(6, 2))
	assert.Equal(t, 1.33, RoundHalfEven(4.0/3.0, 2))
	// Stored just below the decimal tie.
	assert.Equal(t, 0.99, RoundHalfEven(0.995, 2))
	assert.Equal(t, 2.67, RoundHalfEven(2.675, 2))
	assert.Equal(t, 1.01, RoundHalfEven(1.005000001, 2))
}

func TestColorizeBandUsesRoundedAverage(t *testing.T) {
	m, err := models.NewFollowUpWeightMap([]models.FollowUpWeightEntry{{Label: "open", FollowUp: 1, Weight: 1}})
	require.NoError(t, err)
	doc, regions := loadReport(t, workbooktest.CaseReport{
		PivotButton: true,
		Agents: []workbooktest.Agent{
			{Name: "Smith", Details: []workbooktest.Detail{{Status: "Open", Age: 0.995}}},
		},
	})

	aggregates, err := DeriveCycles(doc, regions, m)
	require.NoError(t, err)
	assert.Equal(t, 0.99, aggregates["Smith"].AverageCycles)

	colored, err := Colorize(doc, regions, aggregates, band)
	require.NoError(t, err)
	require.Len(t, colored, 1)
	assert.Equal(t, "outstanding", colored[0].Band)
	assert.Equal(t, "FF92D050", colored[0].Color)
}

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		at       time.Time
		expected string
	}{
		{time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC), "1/5/2024 at 1:00pm"},
		{time.Date(2024, time.November, 15, 9, 7, 0, 0, time.UTC), "11/15/2024 at 9:07am"},
		{time.Date(2024, time.March, 1, 0, 30, 0, 0, time.UTC), "3/1/2024 at 12:30am"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRuntime(tt.at))
		})
	}
}

func TestStampRuntime(t *testing.T) {
	doc, _ := loadReport(t, workbooktest.CaseReport{
		Title:       "Workload Management Report as of ",
		PivotButton: true,
		Agents:      []workbooktest.Agent{{Name: "Smith"}},
	})

	title, err := StampRuntime(doc, time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Workload Management Report as of 1/5/2024 at 1:00pm", title)

	value, err := doc.File.GetCellValue(doc.Sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, title, value)
}

func TestStampRuntimeMissingTitle(t *testing.T) {
	doc, _ := loadReport(t, workbooktest.CaseReport{
		Title:       "Weekly Summary",
		PivotButton: true,
		Agents:      []workbooktest.Agent{{Name: "Smith"}},
	})

	_, err := StampRuntime(doc, time.Now())
	assert.True(t, errors.Is(err, caseerrors.ErrMissingReportTitle))
}
