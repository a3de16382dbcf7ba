// Package workbooktest builds in-memory report exports for tests.
package workbooktest

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

var xfStart = regexp.MustCompile(`<xf[\s/>]`)

// Grid writes rows into the first sheet of a new workbook and returns the xlsx bytes.
func Grid(t testing.TB, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// MarkPivotButton sets pivotButton="1" on the cellXfs entry at styleID.
func MarkPivotButton(t testing.TB, xlsx []byte, styleID int) []byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(xlsx), int64(len(xlsx)))
	require.NoError(t, err)

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		if f.Name == "xl/styles.xml" {
			data = []byte(markXf(t, string(data), styleID))
		}
		fw, err := w.Create(f.Name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return out.Bytes()
}

func markXf(t testing.TB, styles string, styleID int) string {
	t.Helper()
	start := strings.Index(styles, "<cellXfs")
	require.GreaterOrEqual(t, start, 0, "styles part has no cellXfs")

	matches := xfStart.FindAllStringIndex(styles[start:], -1)
	require.Greater(t, len(matches), styleID, "cellXfs has no entry %d", styleID)
	pos := start + matches[styleID][0] + len("<xf")
	return styles[:pos] + ` pivotButton="1"` + styles[pos:]
}

// Detail is one status row of an agent group.
type Detail struct {
	Status string
	Age    float64
}

// Agent is one indentation-0 group of the pivot.
type Agent struct {
	Name    string
	Details []Detail
}

// CaseReport describes a Workload Management pivot export.
//
// Layout: the title in A1, a blank row, the pivot header in row 3, then each
// agent's header row followed by its indented detail rows, then "Grand Total".
type CaseReport struct {
	Title          string
	Caption        string
	PivotButton    bool
	Agents         []Agent
	OmitGrandTotal bool
}

// Build renders the report as xlsx bytes.
func (c CaseReport) Build(t testing.TB) []byte {
	t.Helper()
	title := c.Title
	if title == "" {
		title = "Workload Management Report"
	}
	caption := c.Caption
	if caption == "" {
		caption = "Row Labels"
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	detailStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Indent: 1}})
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(sheet, "A1", title))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		caption, "Average of Case Age", "Count of Case Number", "Cycles", "Weighted", "Average Cycles",
	}))
	require.NoError(t, f.SetCellStyle(sheet, "A3", "A3", headerStyle))

	row := 4
	for _, agent := range c.Agents {
		total := 0.0
		for _, d := range agent.Details {
			total += d.Age
		}
		avg := 0.0
		if len(agent.Details) > 0 {
			avg = total / float64(len(agent.Details))
		}
		setRow(t, f, row, []interface{}{agent.Name, avg, len(agent.Details)})
		row++

		for _, d := range agent.Details {
			setRow(t, f, row, []interface{}{d.Status, d.Age, 1})
			ref, _ := excelize.CoordinatesToCellName(1, row)
			require.NoError(t, f.SetCellStyle(sheet, ref, ref, detailStyle))
			row++
		}
	}
	if !c.OmitGrandTotal {
		setRow(t, f, row, []interface{}{"Grand Total"})
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	data := buf.Bytes()
	if c.PivotButton {
		data = MarkPivotButton(t, data, headerStyle)
	}
	return data
}

func setRow(t testing.TB, f *excelize.File, row int, values []interface{}) {
	t.Helper()
	ref, err := excelize.CoordinatesToCellName(1, row)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, ref, &values))
}
