package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
	"github.com/supportops/casereport-go/pkg/casereport/workbook/workbooktest"
)

func TestFCRToJSON(t *testing.T) {
	result := &models.FCRResult{FCR: 0.5, ClosedCaseCount: 4, EscalatedCaseCount: 1, ChildCaseCount: 1, TotalCases: 4, Denominator: "distinct"}

	data, err := FCRToJSON(result, false)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0.5, decoded["fcr"])
	assert.Equal(t, 4.0, decoded["closed_case_count"])
	assert.Equal(t, "distinct", decoded["denominator"])

	pretty, err := FCRToJSON(result, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"fcr\": 0.5")
}

func TestSummaryToJSON(t *testing.T) {
	summary := &models.CaseReportSummary{
		BookName:  "Case Report.xlsx",
		SheetName: "Sheet1",
		RunAt:     time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC),
		Agents:    []models.AgentAggregate{{AgentName: "Smith", RowCount: 2, AverageCycles: 6, Band: "needs-improvement", Color: "FFFF0000", AverageCell: "F5"}},
	}

	data, err := SummaryToJSON(summary, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"agent_name":"Smith"`)
	assert.Contains(t, string(data), `"run_at":"2024-01-05T13:00:00Z"`)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "53.85%", FormatPercent(7.0/13.0))
	assert.Equal(t, "100%", FormatPercent(1))
	assert.Equal(t, "-25%", FormatPercent(-0.25))
}

func TestReportFilename(t *testing.T) {
	runAt := time.Date(2024, time.March, 7, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "Workload Management Report 3-7-2024.xlsx", ReportFilename(runAt))
}

func TestSaveWorkbook(t *testing.T) {
	data := workbooktest.Grid(t, [][]interface{}{{"Case Number"}, {100}})
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	doc := workbook.New(f, "report.xlsx", workbook.FormatCSV, nil)
	defer doc.Close()

	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	require.NoError(t, SaveWorkbook(doc, path))

	saved, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer saved.Close()
	value, err := saved.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "100", value)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
