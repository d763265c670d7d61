package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceChangePct(t *testing.T) {
	tests := []struct {
		first, last string
		want        float64
	}{
		{"100", "90", -10},
		{"100", "110", 10},
		{"64000.5", "64000.5", 0},
		{"20000", "45000", 125},
	}
	for _, tt := range tests {
		got, err := PriceChangePct(decimal.RequireFromString(tt.first), decimal.RequireFromString(tt.last))
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%s -> %s", tt.first, tt.last)
	}

	_, err := PriceChangePct(decimal.Zero, decimal.NewFromInt(5))
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 128.0/3, Mean([]float64{10, 98, 20}), 1e-12)
}
