// Package config holds the static configuration of a report run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
	"github.com/supportops/casereport-go/pkg/casereport/fcr"
	"github.com/supportops/casereport-go/pkg/casereport/models"
	"github.com/supportops/casereport-go/pkg/casereport/parser"
)

// EnvConfig names the configuration file when no path is given explicitly.
const EnvConfig = "CASEREPORT_CONFIG"

// Config is the run configuration.
type Config struct {
	// Statuses maps pivot status labels to follow-up interval and weight.
	Statuses []models.FollowUpWeightEntry `yaml:"statuses" toml:"statuses"`
	// Thresholds colors agent averages.
	Thresholds models.ThresholdBand `yaml:"thresholds" toml:"thresholds"`
	// ChildCaseThreshold is the minimum subtotal count that counts as child cases.
	ChildCaseThreshold int `yaml:"child_case_threshold" toml:"child_case_threshold"`
	// SubtotalOffset is the 0-based column of case numbers in the parent cases report.
	SubtotalOffset int `yaml:"subtotal_offset" toml:"subtotal_offset"`
	// Denominator is the FCR denominator mode.
	Denominator string `yaml:"denominator" toml:"denominator"`
	// ReopenedDateColumn is the date column of the re-opened export.
	ReopenedDateColumn string `yaml:"reopened_date_column" toml:"reopened_date_column"`
	// ClosedDateColumn is the date column of the closed export.
	ClosedDateColumn string `yaml:"closed_date_column" toml:"closed_date_column"`
}

// Default returns the built-in configuration.
func Default() *Config {
	attempt := func(label string) models.FollowUpWeightEntry {
		return models.FollowUpWeightEntry{Label: label, FollowUp: 2, Weight: 1.75}
	}
	urgent := func(label string) models.FollowUpWeightEntry {
		return models.FollowUpWeightEntry{Label: label, FollowUp: 1, Weight: 2}
	}

	return &Config{
		Statuses: []models.FollowUpWeightEntry{
			attempt("1st attempt"),
			attempt("2nd attempt"),
			attempt("3rd attempt"),
			urgent("escalated"),
			urgent("new"),
			urgent("new email received"),
			urgent("open"),
			urgent("re-opened"),
			attempt("waiting on customer"),
			{Label: "waiting on development", FollowUp: 14, Weight: 1},
			attempt("waiting on ols"),
			attempt("waiting on other follett department"),
			attempt("waiting on 3rd party"),
			{Label: "working", FollowUp: 7, Weight: 1.25},
		},
		Thresholds: models.ThresholdBand{
			Levels: []models.ThresholdLevel{
				{Name: "outstanding", Max: 1.0, Color: "#92D050"},
				{Name: "exceeds", Max: 1.2, Color: "#FFFF00"},
				{Name: "competent", Max: 2.0, Color: "#FFC000"},
			},
			Default: models.ThresholdLevel{Name: "needs-improvement", Color: "#FF0000"},
		},
		ChildCaseThreshold: 4,
		SubtotalOffset:     parser.DefaultSubtotalOptions().Offset,
		Denominator:        string(fcr.DenominatorDistinct),
		ReopenedDateColumn: parser.ColumnEditDate,
		ClosedDateColumn:   parser.ColumnDateOpened,
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml or .toml. Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", caseerrors.ErrInvalidConfig, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", caseerrors.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path, or the file named by CASEREPORT_CONFIG when path is
// empty, or the defaults when neither is set.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the status map, the threshold band and the scalar settings.
func (c *Config) Validate() error {
	if _, err := c.WeightMap(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.ChildCaseThreshold < 0 {
		return fmt.Errorf("%w: child_case_threshold must not be negative", caseerrors.ErrInvalidConfig)
	}
	if c.SubtotalOffset < 0 {
		return fmt.Errorf("%w: subtotal_offset must not be negative", caseerrors.ErrInvalidConfig)
	}
	if c.ReopenedDateColumn == "" || c.ClosedDateColumn == "" {
		return fmt.Errorf("%w: date columns must be set", caseerrors.ErrInvalidConfig)
	}
	_, err := fcr.ParseDenominator(c.Denominator)
	return err
}

// WeightMap builds the normalized status lookup.
func (c *Config) WeightMap() (models.FollowUpWeightMap, error) {
	if len(c.Statuses) == 0 {
		return nil, fmt.Errorf("%w: no statuses configured", caseerrors.ErrInvalidConfig)
	}
	return models.NewFollowUpWeightMap(c.Statuses)
}
