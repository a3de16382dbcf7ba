package models

import (
	"fmt"
	"strings"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
)

// FollowUpWeightEntry is the configured follow-up interval and weight for one status label.
type FollowUpWeightEntry struct {
	// Label is the trimmed, lowercase status label.
	Label string `json:"label" yaml:"label" toml:"label"`
	// FollowUp is the expected follow-up interval in days. Positive.
	FollowUp float64 `json:"follow_up" yaml:"follow_up" toml:"follow_up"`
	// Weight scales a cycle value by the status importance. Positive.
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// FollowUpWeightMap maps normalized status labels to their entries.
// It is built once per run and never mutated afterwards.
type FollowUpWeightMap map[string]FollowUpWeightEntry

// NormalizeLabel trims and lowercases a status label.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// NewFollowUpWeightMap builds a map from entries, normalizing every label.
// Later duplicates replace earlier ones.
func NewFollowUpWeightMap(entries []FollowUpWeightEntry) (FollowUpWeightMap, error) {
	m := make(FollowUpWeightMap, len(entries))
	for _, e := range entries {
		e.Label = NormalizeLabel(e.Label)
		if e.Label == "" {
			return nil, fmt.Errorf("%w: empty status label", caseerrors.ErrInvalidConfig)
		}
		if e.FollowUp <= 0 || e.Weight <= 0 {
			return nil, fmt.Errorf("%w: status %q needs positive follow_up and weight", caseerrors.ErrInvalidConfig, e.Label)
		}
		m[e.Label] = e
	}
	return m, nil
}

// Lookup resolves a raw status label case- and whitespace-insensitively.
func (m FollowUpWeightMap) Lookup(label string) (FollowUpWeightEntry, error) {
	e, ok := m[NormalizeLabel(label)]
	if !ok {
		return FollowUpWeightEntry{}, fmt.Errorf("%w: %q", caseerrors.ErrUnrecognizedStatusLabel, strings.TrimSpace(label))
	}
	return e, nil
}
