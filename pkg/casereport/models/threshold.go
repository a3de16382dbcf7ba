package models

import (
	"fmt"
	"regexp"
	"strings"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
)

var hexColorRe = regexp.MustCompile(`^#?(?:[0-9A-Fa-f]{2})?[0-9A-Fa-f]{6}$`)

// ThresholdLevel is one performance band: values strictly below Max get Color.
type ThresholdLevel struct {
	// Name is the band name (e.g. "outstanding").
	Name string `json:"name" yaml:"name" toml:"name"`
	// Max is the non-inclusive upper bound. Ignored for the default level.
	Max float64 `json:"max,omitempty" yaml:"max" toml:"max"`
	// Color is a "#RRGGBB" hex string.
	Color string `json:"color" yaml:"color" toml:"color"`
}

// ThresholdBand is an ordered list of ascending levels plus a terminal default.
type ThresholdBand struct {
	Levels  []ThresholdLevel `json:"levels" yaml:"levels" toml:"levels"`
	Default ThresholdLevel   `json:"default" yaml:"default" toml:"default"`
}

// Select returns the first level whose Max strictly exceeds value, or the default level.
// A value equal to a threshold therefore falls into the next band.
func (b ThresholdBand) Select(value float64) ThresholdLevel {
	for _, l := range b.Levels {
		if value < l.Max {
			return l
		}
	}
	return b.Default
}

// Validate checks that thresholds ascend and every color is a hex RGB string.
func (b ThresholdBand) Validate() error {
	for i, l := range b.Levels {
		if i > 0 && l.Max < b.Levels[i-1].Max {
			return fmt.Errorf("%w: threshold %q (%v) is below %q (%v)", caseerrors.ErrInvalidConfig,
				l.Name, l.Max, b.Levels[i-1].Name, b.Levels[i-1].Max)
		}
		if !hexColorRe.MatchString(l.Color) {
			return fmt.Errorf("%w: color %q of %q is not a hex color", caseerrors.ErrInvalidConfig, l.Color, l.Name)
		}
	}
	if !hexColorRe.MatchString(b.Default.Color) {
		return fmt.Errorf("%w: default color %q is not a hex color", caseerrors.ErrInvalidConfig, b.Default.Color)
	}
	return nil
}

// ARGB converts a 6- or 8-hex-digit color to the alpha-prefixed "FF" + last 6 digits form.
func ARGB(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(color) > 6 {
		color = color[len(color)-6:]
	}
	return "FF" + color
}
