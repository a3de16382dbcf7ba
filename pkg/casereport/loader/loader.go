// Package loader decodes report exports of unknown format into workbook documents.
//
// Exports arrive with misleading extensions (HTML saved as .xls, CSV saved as
// .xlsx), so the format is never taken from the name. Each decoder is tried in
// a fixed order and the first success wins.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/workbook"
)

const sheetName = "Sheet1"

type attempt struct {
	format workbook.Format
	decode func(data []byte, name string) (*workbook.Document, error)
}

var attempts = []attempt{
	{workbook.FormatXLSX, decodeXLSX},
	{workbook.FormatHTML, gridDecoder(workbook.FormatHTML, readHTML)},
	{workbook.FormatXLS, gridDecoder(workbook.FormatXLS, readXLS)},
	{workbook.FormatCSV, gridDecoder(workbook.FormatCSV, readCSV)},
}

// Load decodes r, trying xlsx, HTML table, legacy xls and delimited text in order.
// A failing attempt never aborts the remaining ones.
func Load(r io.Reader, name string) (*workbook.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", name)
	}

	var reasons []string
	for _, a := range attempts {
		doc, err := a.decode(data, name)
		if err == nil {
			log.Debug().Str("file", name).Str("format", string(a.format)).Msg("loader.decoded")
			return doc, nil
		}
		err = eris.Wrapf(err, "%s", a.format)
		log.Debug().Str("file", name).Str("format", string(a.format)).Err(err).Msg("loader.attempt.failed")
		reasons = append(reasons, err.Error())
	}
	return nil, fmt.Errorf("%w: %s (%s)", caseerrors.ErrUnsupportedFileFormat, name, strings.Join(reasons, "; "))
}

func decodeXLSX(data []byte, name string) (*workbook.Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	styles, err := workbook.PivotButtonStyles(data)
	if err != nil {
		f.Close()
		return nil, err
	}
	return workbook.New(f, name, workbook.FormatXLSX, styles), nil
}

// gridDecoder adapts a grid reader into a decoder that materializes the grid
// into a fresh workbook, typing numeric text as numbers.
func gridDecoder(format workbook.Format, read func([]byte) ([][]string, error)) func([]byte, string) (*workbook.Document, error) {
	return func(data []byte, name string) (*workbook.Document, error) {
		grid, err := read(data)
		if err != nil {
			return nil, err
		}
		if len(grid) == 0 {
			return nil, fmt.Errorf("no rows")
		}
		f, err := materialize(grid)
		if err != nil {
			return nil, err
		}
		return workbook.New(f, name, format, nil), nil
	}
}

func materialize(grid [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, values := range grid {
		row := make([]interface{}, len(values))
		for j, v := range values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			row[j] = workbook.ParseValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
