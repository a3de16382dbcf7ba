// Package output renders run results as JSON and persists formatted workbooks.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// FCRToJSON serializes an FCR result.
func FCRToJSON(r *models.FCRResult, pretty bool) ([]byte, error) {
	return toJSON(r, pretty)
}

// SummaryToJSON serializes a case report summary.
func SummaryToJSON(s *models.CaseReportSummary, pretty bool) ([]byte, error) {
	return toJSON(s, pretty)
}

func toJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// FormatPercent renders a ratio as a percentage rounded to 2 decimals, e.g. "53.85%".
func FormatPercent(ratio float64) string {
	return strconv.FormatFloat(math.RoundToEven(ratio*10000)/100, 'f', -1, 64) + "%"
}

// ReportFilename is the download name of a formatted case report.
func ReportFilename(runAt time.Time) string {
	return fmt.Sprintf("Workload Management Report %s.xlsx", runAt.Format("1-2-2006"))
}

// SaveWorkbook writes doc as xlsx to path. The file appears only once fully written.
func SaveWorkbook(doc *workbook.Document, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".casereport-*.xlsx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := doc.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
