package loader

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// readXLS reads the first worksheet of a BIFF workbook.
func readXLS(data []byte) (grid [][]string, err error) {
	// The BIFF reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("corrupt xls stream: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	// An OLE container without a Workbook or Book stream opens without error.
	if wb == nil {
		return nil, fmt.Errorf("no workbook stream found")
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		values := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			values[j] = row.Col(j)
		}
		grid = append(grid, values)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return grid, nil
}
