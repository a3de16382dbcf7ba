package report

import (
	"fmt"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

// Colorize writes each agent's AVERAGE formula over its weight cells and fills
// it with the band color selected by the agent's average cycles.
// It returns the aggregates in pivot order, annotated with band and cell.
func Colorize(doc *workbook.Document, regions []parser.AgentRegion, aggregates map[string]models.AgentAggregate, band models.ThresholdBand) ([]models.AgentAggregate, error) {
	var result []models.AgentAggregate
	for _, region := range regions {
		n := len(region.Details)
		if n == 0 {
			continue
		}
		agg, ok := aggregates[region.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no aggregate for agent %q", caseerrors.ErrMalformedPivotStructure, region.Name)
		}
		if agg.RowCount != n {
			return nil, fmt.Errorf("%w: agent %q has %d rows but %d were aggregated",
				caseerrors.ErrMalformedPivotStructure, region.Name, n, agg.RowCount)
		}

		// i is the 0-based header index; its detail rows are i+2..i+n+1 (1-based).
		i := region.Header.Index()
		target := cellName(colAverage, i+2)
		formula := fmt.Sprintf("AVERAGE(%s:%s)", cellName(colWeights, i+2), cellName(colWeights, i+n+1))

		level := band.Select(agg.AverageCycles)
		argb := models.ARGB(level.Color)
		if err := doc.SetFormula(target, formula); err != nil {
			return nil, err
		}
		if err := doc.Restyle(target, "average:"+argb, averageFormat(argb)); err != nil {
			return nil, err
		}

		agg.Band = level.Name
		agg.Color = argb
		agg.AverageCell = target
		result = append(result, agg)
	}
	return result, nil
}
