package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caseerrors "github.com/supportops/casereport-go/pkg/casereport/errors"
)

func TestFollowUpWeightMapLookup(t *testing.T) {
	m, err := NewFollowUpWeightMap([]FollowUpWeightEntry{
		{Label: " New ", FollowUp: 1, Weight: 2},
		{Label: "Waiting on Development", FollowUp: 14, Weight: 1},
	})
	require.NoError(t, err)

	for _, label := range []string{"new", "NEW", "  New\t", "waiting on development"} {
		e, err := m.Lookup(label)
		require.NoError(t, err, label)
		assert.Equal(t, NormalizeLabel(label), e.Label)
	}

	_, err = m.Lookup("Pending Vendor")
	assert.ErrorIs(t, err, caseerrors.ErrUnrecognizedStatusLabel)
	assert.Contains(t, err.Error(), `"Pending Vendor"`)
}

func TestNewFollowUpWeightMapRejectsNonPositive(t *testing.T) {
	_, err := NewFollowUpWeightMap([]FollowUpWeightEntry{{Label: "new", FollowUp: 0, Weight: 2}})
	assert.ErrorIs(t, err, caseerrors.ErrInvalidConfig)

	_, err = NewFollowUpWeightMap([]FollowUpWeightEntry{{Label: "  ", FollowUp: 1, Weight: 1}})
	assert.ErrorIs(t, err, caseerrors.ErrInvalidConfig)
}
