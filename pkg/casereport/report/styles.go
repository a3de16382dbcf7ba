package report

import (
	"github.com/xuri/excelize/v2"
)

// Case report columns (0-based).
const (
	colLabel   = 0
	colAge     = 1
	colCycles  = 3
	colWeights = 4
	colAverage = 5
)

// numFmtTwoDecimals is the built-in "0.00" number format.
const numFmtTwoDecimals = 2

// The overlays below replace fill, number format, alignment and border of a
// cell's style; font and protection are kept.

func blankFill(s *excelize.Style) {
	s.Fill = excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1}
}

func metricFormat(s *excelize.Style) {
	s.NumFmt = numFmtTwoDecimals
	s.CustomNumFmt = nil
	s.Alignment = &excelize.Alignment{Horizontal: "center"}
}

// averageFormat fills with argb (alpha-prefixed) and draws a medium border on every side.
func averageFormat(argb string) func(*excelize.Style) {
	return func(s *excelize.Style) {
		border := func(side string) excelize.Border {
			return excelize.Border{Type: side, Color: "000000", Style: 2}
		}
		metricFormat(s)
		s.Fill = excelize.Fill{Type: "pattern", Color: []string{argb[2:]}, Pattern: 1}
		s.Border = []excelize.Border{border("left"), border("right"), border("top"), border("bottom")}
	}
}

func cellName(col, row int) string {
	// col is 0-based, row is 1-based
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
