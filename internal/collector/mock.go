package collector

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"MoonSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PricePoint
	Err       error
	End       time.Time // last generated day; zero means today

	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, _ string, period model.Period) ([]model.PricePoint, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now()
	}
	return generateMockBars(m.Price, period.Days(), model.DateOf(end)), nil
}

// generateMockBars produces weekday-only bars ending at end.
func generateMockBars(basePrice float64, days int, end time.Time) []model.PricePoint {
	bars := make([]model.PricePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(days/2-i)*0.001)
		bars = append(bars, model.PricePoint{
			Date:  d,
			Close: decimal.NewFromFloat(p).Round(2),
		})
	}
	return bars
}
