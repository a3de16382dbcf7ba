package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
)

const stylesPart = "xl/styles.xml"

// PivotButtonStyles returns the cellXfs indexes whose xf element carries pivotButton="1".
// excelize does not expose the attribute, so the styles part is walked directly.
func PivotButtonStyles(xlsx []byte) (map[int]bool, error) {
	r, err := zip.NewReader(bytes.NewReader(xlsx), int64(len(xlsx)))
	if err != nil {
		return nil, err
	}
	data, err := readZipFile(r, stylesPart)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return map[int]bool{}, nil
	}
	return parseCellXfs(data)
}

func parseCellXfs(data []byte) (map[int]bool, error) {
	result := make(map[int]bool)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	inCellXfs := false
	index := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "cellXfs":
				inCellXfs = true
				index = 0
			case "xf":
				if !inCellXfs {
					continue
				}
				for _, attr := range t.Attr {
					if attr.Name.Local == "pivotButton" && (attr.Value == "1" || attr.Value == "true") {
						result[index] = true
					}
				}
				index++
			}
		case xml.EndElement:
			if t.Name.Local == "cellXfs" {
				inCellXfs = false
			}
		}
	}
	return result, nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}
