package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
)

func testBand() ThresholdBand {
	return ThresholdBand{
		Levels: []ThresholdLevel{
			{Name: "A", Max: 1.0, Color: "#000001"},
			{Name: "B", Max: 1.2, Color: "#000002"},
			{Name: "C", Max: 2.0, Color: "#000003"},
		},
		Default: ThresholdLevel{Name: "D", Color: "#000004"},
	}
}

func TestThresholdBandSelect(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "A"},
		{0.99, "A"},
		{1.0, "B"}, // equal to a threshold falls into the next band
		{1.19, "B"},
		{1.2, "C"},
		{1.99, "C"},
		{2.0, "D"},
		{6.0, "D"},
	}

	band := testBand()
	for _, tt := range tests {
		assert.Equal(t, tt.expected, band.Select(tt.value).Name, "Select(%v)", tt.value)
	}
}

func TestThresholdBandValidate(t *testing.T) {
	assert.NoError(t, testBand().Validate())

	descending := testBand()
	descending.Levels[1].Max = 0.5
	err := descending.Validate()
	assert.True(t, errors.Is(err, caseerrors.ErrInvalidConfig), "got %v", err)

	badColor := testBand()
	badColor.Default.Color = "red"
	assert.ErrorIs(t, badColor.Validate(), caseerrors.ErrInvalidConfig)
}

func TestARGB(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#92D050", "FF92D050"},
		{"ffff00", "FFFFFF00"},
		{"#00FFC000", "FFFFC000"},
		{" #ff0000 ", "FFFF0000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ARGB(tt.input), "ARGB(%q)", tt.input)
	}
}
