package notifier

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MoonSentinel/internal/model"
)

func sampleReport() *model.AnalysisReport {
	return &model.AnalysisReport{
		ID:            "abc-123",
		Asset:         model.NewAsset("BTC-USD", ""),
		Period:        model.Period6Months,
		GeneratedAt:   time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		Correlation:   model.CorrelationResult{Coefficient: 0.8095, PValue: 0.3996, N: 3},
		Verdict:       model.VerdictStrongPositive,
		NarrativeText: "🌟 The Cosmic Connection Revealed!\n\nBitcoin declined by 10.0% & more",
		Summary: model.SummaryStats{
			PriceChangePct:  -10,
			LastClose:       90,
			FullMoonCount:   1,
			AvgIllumination: 42.7,
			FullMoonDates:   []time.Time{time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestFormatReport(t *testing.T) {
	msg := FormatReport(sampleReport())

	for _, want := range []string{
		"Bitcoin | 6 Months",
		"Last close: <b>90.00</b> (-10.00%)",
		"Full moons: <b>1</b> (avg illumination 42.7%)",
		"VERDICT: ASTROLOGY IS REAL?",
		"Correlation: 0.8095 (p-value: 0.3996)",
		"Bitcoin declined by 10.0% &amp; more",
		"• 2024-03-02",
		"report abc-123",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestFormatReport_CapsFullMoonList(t *testing.T) {
	r := sampleReport()
	r.Summary.FullMoonDates = nil
	for i := 0; i < maxFullMoonDates+3; i++ {
		r.Summary.FullMoonDates = append(r.Summary.FullMoonDates, time.Date(2023, 1, 1+i, 0, 0, 0, 0, time.UTC))
	}
	assert.Contains(t, FormatReport(r), "… and 3 more")
}

func TestFormatPeriods(t *testing.T) {
	msg := FormatPeriods()
	for _, p := range model.Periods {
		assert.Contains(t, msg, p.Label())
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&model.DataUnavailableError{Asset: "BTC-USD", Period: model.Period1Year}, "Could not fetch price data for BTC-USD (1 Year)"},
		{fmt.Errorf("wrapped: %w", &model.NoOverlapError{}), "share no dates"},
		{&model.ComputationError{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Err: errors.New("x")}, "failed for 2024-01-02"},
		{errors.New("<boom>"), "Analysis failed: &lt;boom&gt;"},
	}
	for _, tt := range tests {
		assert.Contains(t, FormatError(tt.err), tt.want)
	}
}
