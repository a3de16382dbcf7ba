package report

import (
	"fmt"
	"strings"
	"time"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// TitleMarker identifies the report title cell, case-insensitively.
const TitleMarker = "workload management report"

// FormatRuntime renders t as "m/d/yyyy at h:mmam", lowercase and unpadded.
func FormatRuntime(t time.Time) string {
	return strings.ToLower(t.Format("1/2/2006 at 3:04PM"))
}

// StampRuntime appends the formatted runtime to every title cell in the
// first rows of the sheet and returns the first stamped title.
func StampRuntime(doc *workbook.Document, runAt time.Time) (string, error) {
	rows, err := doc.Rows()
	if err != nil {
		return "", err
	}

	stamp := FormatRuntime(runAt)
	var first string
	for i := 0; i < len(rows) && i < parser.ScanLimit; i++ {
		label := rows[i].Cell(colLabel)
		if !strings.Contains(strings.ToLower(label.Value), TitleMarker) {
			continue
		}
		title := label.Value + stamp
		if err := doc.SetValue(label.Ref, title); err != nil {
			return "", err
		}
		if first == "" {
			first = title
		}
	}
	if first == "" {
		return "", fmt.Errorf("%w: no %q title within the first %d rows", caseerrors.ErrMissingReportTitle, TitleMarker, parser.ScanLimit)
	}
	return first, nil
}
