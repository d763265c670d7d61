package display

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonSentinel/internal/model"
)

func sampleRecords(n int) []model.AlignedRecord {
	out := make([]model.AlignedRecord, n)
	for i := range out {
		illum := float64(i*7%100) + 0.25
		out[i] = model.AlignedRecord{
			Date:         time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Close:        decimal.NewFromInt(int64(100 + i)),
			Illumination: illum,
			IsFullMoon:   illum > model.FullMoonThreshold,
		}
	}
	return out
}

func sampleReport(v model.Verdict) *model.AnalysisReport {
	return &model.AnalysisReport{
		ID:             "abc",
		Asset:          model.NewAsset("BTC-USD", ""),
		Period:         model.Period1Month,
		GeneratedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AlignedRecords: sampleRecords(25),
		Correlation:    model.CorrelationResult{Coefficient: 0.1234, PValue: 0.5678, N: 25},
		Verdict:        v,
		NarrativeText:  "🔍 A Whisper of Cosmic Influence",
		Summary: model.SummaryStats{
			PriceChangePct:  24,
			LastClose:       124,
			FullMoonCount:   1,
			AvgIllumination: 48.2,
			FullMoonDates:   []time.Time{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(model.VerdictStrongPositive)))
	out := buf.String()

	for _, want := range []string{
		"Bitcoin vs Moon Phases",
		"1 Month",
		"124.00",
		"+24.00%",
		"Avg: 48.2%",
		"0.1234",
		"VERDICT: ASTROLOGY IS REAL?",
		"Correlation: 0.1234 (p-value: 0.5678)",
		"A Whisper of Cosmic Influence",
		"2024-01-15",
		"report abc",
	} {
		assert.Contains(t, out, want)
	}
	// Only the trailing rows appear in the raw table.
	assert.NotContains(t, out, "2024-01-05")
	assert.Contains(t, out, "2024-01-06")
	assert.Contains(t, out, "2024-01-25")
}

func TestRender_NoEffect(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(model.VerdictNoEffect)))
	assert.Contains(t, buf.String(), "JUST COINCIDENCE")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords(3)))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"date", "close", "illumination", "is_full_moon"}, rows[0])
	assert.Equal(t, []string{"2024-01-02", "101", "7.2500", "false"}, rows[2])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, sampleRecords(2)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}
