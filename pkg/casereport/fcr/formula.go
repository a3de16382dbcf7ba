package fcr

import (
	"fmt"
	"strings"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/models"
)

// Denominator selects what FCR is divided by.
type Denominator string

const (
	// DenominatorDistinct divides by the number of deduplicated cases.
	DenominatorDistinct Denominator = "distinct"
	// DenominatorCategorySum divides by closed + escalated + child.
	DenominatorCategorySum Denominator = "category-sum"
)

// ParseDenominator validates a denominator mode name. Empty selects distinct.
func ParseDenominator(s string) (Denominator, error) {
	switch d := Denominator(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DenominatorDistinct, nil
	case DenominatorDistinct, DenominatorCategorySum:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown denominator %q (want %s or %s)",
			caseerrors.ErrInvalidConfig, s, DenominatorDistinct, DenominatorCategorySum)
	}
}

// Compute returns (closed - escalated - child) / total, where total is either
// distinct or the sum of the three counts depending on mode.
func Compute(closed, escalated, child, distinct int, mode Denominator) (models.FCRResult, error) {
	var total int
	switch mode {
	case DenominatorDistinct, "":
		mode = DenominatorDistinct
		total = distinct
	case DenominatorCategorySum:
		total = closed + escalated + child
	default:
		return models.FCRResult{}, fmt.Errorf("%w: unknown denominator %q", caseerrors.ErrInvalidConfig, mode)
	}
	if total == 0 {
		return models.FCRResult{}, fmt.Errorf("%w: %s denominator is zero", caseerrors.ErrDivisionByZero, mode)
	}

	return models.FCRResult{
		FCR:                float64(closed-escalated-child) / float64(total),
		ClosedCaseCount:    closed,
		EscalatedCaseCount: escalated,
		ChildCaseCount:     child,
		TotalCases:         total,
		Denominator:        string(mode),
	}, nil
}
