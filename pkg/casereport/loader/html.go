package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readHTML returns the first table of an HTML export that has rows.
func readHTML(data []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var grid [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.Join(strings.Fields(cell.Text()), " "))
			})
			grid = append(grid, row)
		})
		return len(grid) == 0
	})
	if len(grid) == 0 {
		return nil, fmt.Errorf("no table rows found")
	}
	return grid, nil
}
