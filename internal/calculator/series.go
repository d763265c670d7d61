package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"MoonSentinel/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Closes extracts the closing prices of aligned records as float64.
func Closes(records []model.AlignedRecord) []float64 {
	closes := make([]float64, len(records))
	for i, r := range records {
		closes[i] = r.Close.InexactFloat64()
	}
	return closes
}

// Illuminations extracts the illumination values of aligned records.
func Illuminations(records []model.AlignedRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Illumination
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PriceChangePct returns (last - first) / first * 100.
func PriceChangePct(first, last decimal.Decimal) (float64, error) {
	if first.IsZero() {
		return 0, errors.New("first close is zero")
	}
	return last.Sub(first).Div(first).Mul(hundred).InexactFloat64(), nil
}
