package parser

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// SubtotalLabel marks a child-case count row in the parent cases report.
const SubtotalLabel = "Subtotal"

// SubtotalOptions configures the child-case scan.
type SubtotalOptions struct {
	// Offset is the 0-based column holding both case numbers and the Subtotal marker.
	// The count is read two columns to its right.
	Offset int
}

// DefaultSubtotalOptions returns the layout of the parent cases export.
func DefaultSubtotalOptions() SubtotalOptions {
	return SubtotalOptions{Offset: 1}
}

// AggregateChildCases sums the Subtotal counts that reach threshold.
// When relevant is non-nil, only subtotals under a case number in relevant count.
func AggregateChildCases(doc *workbook.Document, relevant map[string]bool, threshold int, opts SubtotalOptions) (int, error) {
	rows, err := doc.Rows()
	if err != nil {
		return 0, err
	}

	total := 0
	current := ""
	for _, row := range rows {
		marker := row.Cell(opts.Offset)
		if marker.Text() == SubtotalLabel {
			countCell := row.Cell(opts.Offset + 2)
			count, ok := countCell.Number()
			if !ok {
				return 0, &caseerrors.CellError{Ref: countCell.Ref, Value: countCell.Text(), Err: caseerrors.ErrMalformedSubtotal}
			}
			if count != math.Trunc(count) || count < 0 {
				return 0, &caseerrors.CellError{Ref: countCell.Ref, Value: countCell.Text(),
					Err: fmt.Errorf("%w: count is not a whole number", caseerrors.ErrMalformedSubtotal)}
			}
			if relevant != nil && !relevant[current] {
				continue
			}
			if int(count) >= threshold {
				total += int(count)
			}
			continue
		}
		if _, ok := marker.Number(); ok {
			current = CanonicalCaseNumber(marker.Text())
		}
	}
	return total, nil
}

// RelevantCaseNumbers builds the case-number filter for AggregateChildCases.
func RelevantCaseNumbers(numbers []string) map[string]bool {
	return lo.SliceToMap(numbers, func(n string) (string, bool) {
		return CanonicalCaseNumber(n), true
	})
}
