// Package fcr reconciles case records and computes the first call resolution rate.
package fcr

import (
	"slices"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/supportops/casereport-go/pkg/casereport/models"
)

// Reconcile keeps the most recent record per case number. The result is
// ordered by case number; records are not modified.
func Reconcile(records []models.CaseRecord) []models.CaseRecord {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.After(sorted[j].DateTime)
	})
	// stable: equal case numbers keep the newest-first order from above
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessCaseNumber(sorted[i].CaseNumber, sorted[j].CaseNumber)
	})
	return lo.UniqBy(sorted, func(r models.CaseRecord) string {
		return r.CaseNumber
	})
}

// Partition splits deduplicated records into closed cases (not from the
// re-opened export) and the escalated subset of those.
func Partition(records []models.CaseRecord) (closed, escalated []models.CaseRecord) {
	closed = lo.Filter(records, func(r models.CaseRecord, _ int) bool {
		return !r.IsReopened
	})
	escalated = lo.Filter(closed, func(r models.CaseRecord, _ int) bool {
		return r.WasEscalated
	})
	return closed, escalated
}

// CaseNumbers returns the case numbers of records in order.
func CaseNumbers(records []models.CaseRecord) []string {
	return lo.Map(records, func(r models.CaseRecord, _ int) string {
		return r.CaseNumber
	})
}

// lessCaseNumber orders numeric case numbers numerically and before any text.
func lessCaseNumber(a, b string) bool {
	an, aErr := strconv.ParseFloat(a, 64)
	bn, bErr := strconv.ParseFloat(b, 64)
	switch {
	case aErr == nil && bErr == nil:
		return an < bn
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
