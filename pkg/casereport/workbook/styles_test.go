package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellXfs(t *testing.T) {
	styles := `<?xml version="1.0" encoding="UTF-8"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <cellStyleXfs count="1"><xf numFmtId="0" fontId="0" pivotButton="1"/></cellStyleXfs>
  <cellXfs count="3">
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>
    <xf numFmtId="0" fontId="1" fillId="0" borderId="0" xfId="0" pivotButton="1"><alignment indent="1"/></xf>
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0" pivotButton="0"/>
  </cellXfs>
</styleSheet>`

	got, err := parseCellXfs([]byte(styles))
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true}, got)
}

func TestPivotButtonStylesRejectsNonZip(t *testing.T) {
	_, err := PivotButtonStyles([]byte("Case Number,Status\n"))
	assert.Error(t, err)
}
