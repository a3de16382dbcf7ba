// Package report writes cycle, weight and average formulas into a case report pivot.
//
// Stages operate on the same document in order: StampRuntime writes the title
// cell, DeriveCycles writes columns D and E of every detail row and blanks them
// on agent rows, Colorize writes column F of each agent's first detail row.
package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// DeriveCycles writes the cycle (age / follow-up) and weight (cycle * weight)
// formulas of every detail row and returns the per-agent aggregates, keyed by
// agent name. Agents without detail rows are skipped; a pivot where every agent
// is empty is malformed.
func DeriveCycles(doc *workbook.Document, regions []parser.AgentRegion, weights models.FollowUpWeightMap) (map[string]models.AgentAggregate, error) {
	aggregates := make(map[string]models.AgentAggregate, len(regions))
	for _, region := range regions {
		for _, col := range []int{colCycles, colWeights} {
			if err := doc.Restyle(region.Header.Cell(col).Ref, "blank", blankFill); err != nil {
				return nil, err
			}
		}

		var rowCount int
		var cycleSum float64
		for _, row := range region.Details {
			weight, err := deriveRow(doc, row, weights)
			if err != nil {
				return nil, err
			}
			rowCount++
			cycleSum += weight
		}

		if rowCount == 0 {
			log.Warn().Str("agent", region.Name).Int("row", region.Header.Num).Msg("report.agent.skipped")
			continue
		}
		aggregates[region.Name] = models.AgentAggregate{
			AgentName:     region.Name,
			RowCount:      rowCount,
			AverageCycles: RoundHalfEven(cycleSum/float64(rowCount), 2),
		}
	}
	if len(aggregates) == 0 {
		return nil, fmt.Errorf("%w: no agent has detail rows", caseerrors.ErrMalformedPivotStructure)
	}
	return aggregates, nil
}

// deriveRow writes both formulas of one detail row and returns the numeric weight value.
func deriveRow(doc *workbook.Document, row workbook.Row, weights models.FollowUpWeightMap) (float64, error) {
	label := row.Cell(colLabel)
	entry, err := weights.Lookup(label.Text())
	if err != nil {
		return 0, &caseerrors.CellError{Ref: label.Ref, Err: err}
	}

	ageCell := row.Cell(colAge)
	age, ok := ageCell.Number()
	if !ok {
		return 0, &caseerrors.CellError{Ref: ageCell.Ref, Value: ageCell.Text(),
			Err: fmt.Errorf("%w: average case age is not a number", caseerrors.ErrMalformedPivotStructure)}
	}

	cycleRef := row.Cell(colCycles).Ref
	weightRef := row.Cell(colWeights).Ref
	for _, w := range []struct{ ref, formula string }{
		{cycleRef, ageCell.Ref + "/" + formatFactor(entry.FollowUp)},
		{weightRef, cycleRef + "*" + formatFactor(entry.Weight)},
	} {
		if err := doc.SetFormula(w.ref, w.formula); err != nil {
			return 0, err
		}
		if err := doc.Restyle(w.ref, "metric", metricFormat); err != nil {
			return 0, err
		}
	}

	cycle := age / entry.FollowUp
	return cycle * entry.Weight, nil
}

// RoundHalfEven rounds the stored value of x to the given number of decimal
// places, ties to even. Rounding goes through the exact decimal expansion, so
// 0.995 (stored just below) rounds to 0.99.
func RoundHalfEven(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
