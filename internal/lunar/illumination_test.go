package lunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeeusModel_KnownPhases(t *testing.T) {
	m := NewMeeusModel()
	tests := []struct {
		name     string
		date     time.Time
		min, max float64
	}{
		{"full moon 2024-01-25", utc(2024, 1, 25), 95, 100},
		{"new moon 2024-01-11", utc(2024, 1, 11), 0, 5},
		{"full moon 2023-08-31", utc(2023, 8, 31), 95, 100},
		{"first quarter 2024-03-17", utc(2024, 3, 17), 40, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := m.IlluminationAt(tt.date)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, tt.min)
			assert.LessOrEqual(t, v, tt.max)
		})
	}
}

func TestMeeusModel_IgnoresTimeOfDay(t *testing.T) {
	m := NewMeeusModel()
	a, err := m.IlluminationAt(utc(2024, 6, 1))
	require.NoError(t, err)
	b, err := m.IlluminationAt(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMeeusModel_RejectsUnsupportedYears(t *testing.T) {
	_, err := NewMeeusModel().IlluminationAt(time.Date(5000, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
