package calculator

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonSentinel/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(t time.Time, c int64) model.PricePoint {
	return model.PricePoint{Date: t, Close: decimal.NewFromInt(c)}
}

func moonRange(start time.Time, illum ...float64) []model.MoonPoint {
	out := make([]model.MoonPoint, len(illum))
	for i, v := range illum {
		out[i] = model.NewMoonPoint(start.AddDate(0, 0, i), v)
	}
	return out
}

func TestAlign_Scenario(t *testing.T) {
	d1 := day(2024, 3, 1)
	prices := []model.PricePoint{price(d1, 100), price(d1.AddDate(0, 0, 1), 110), price(d1.AddDate(0, 0, 2), 90)}
	moon := moonRange(d1, 10, 98, 20)

	recs, err := Align(prices, moon)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.False(t, recs[0].IsFullMoon)
	assert.True(t, recs[1].IsFullMoon)
	assert.Equal(t, 98.0, recs[1].Illumination)
	assert.True(t, recs[2].Close.Equal(decimal.NewFromInt(90)))
}

func TestAlign_DiscardsTimeOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 09:30 New York on March 4 is still March 4 even though UTC agrees,
	// and 20:00 New York on March 5 is March 6 in UTC but March 5 locally.
	prices := []model.PricePoint{
		{Date: time.Date(2024, 3, 4, 9, 30, 0, 0, ny), Close: decimal.NewFromInt(1)},
		{Date: time.Date(2024, 3, 5, 20, 0, 0, 0, ny), Close: decimal.NewFromInt(2)},
	}
	moon := moonRange(day(2024, 3, 4), 40, 50)

	recs, err := Align(prices, moon)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, day(2024, 3, 4), recs[0].Date)
	assert.Equal(t, day(2024, 3, 5), recs[1].Date)
	assert.Equal(t, 50.0, recs[1].Illumination)
}

func TestAlign_SkipsGapsAndKeepsFirstDuplicate(t *testing.T) {
	d1 := day(2024, 1, 1)
	prices := []model.PricePoint{
		price(d1, 10),
		price(d1.Add(6*time.Hour), 11), // same day, dropped
		price(d1.AddDate(0, 0, 3), 12),
		price(d1.AddDate(0, 0, 10), 13), // outside moon range
	}
	moon := moonRange(d1, 1, 2, 3, 4, 5)
	moon = append(moon, model.NewMoonPoint(d1, 99)) // duplicate moon date, dropped

	recs, err := Align(prices, moon)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].Close.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1.0, recs[0].Illumination)
	assert.Equal(t, 4.0, recs[1].Illumination)
}

func TestAlign_Invariants(t *testing.T) {
	start := day(2023, 12, 20)
	var prices []model.PricePoint
	for i := 0; i < 40; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		prices = append(prices, price(d, int64(100+i)))
	}
	illum := make([]float64, 25)
	for i := range illum {
		illum[i] = float64(i * 4)
	}
	moon := moonRange(start.AddDate(0, 0, 5), illum...)

	recs, err := Align(prices, moon)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), min(len(prices), len(moon)))

	priceDates := map[time.Time]bool{}
	for _, p := range prices {
		priceDates[p.Date] = true
	}
	moonDates := map[time.Time]bool{}
	for _, m := range moon {
		moonDates[m.Date] = true
	}
	for i, r := range recs {
		assert.True(t, priceDates[r.Date], "date %s missing from prices", r.Date)
		assert.True(t, moonDates[r.Date], "date %s missing from moon", r.Date)
		if i > 0 {
			assert.True(t, recs[i-1].Date.Before(r.Date), "not strictly ascending at %d", i)
		}
	}
}

func TestAlign_NoOverlap(t *testing.T) {
	prices := []model.PricePoint{price(day(2024, 1, 1), 1), price(day(2024, 1, 2), 2)}
	moon := moonRange(day(2024, 6, 1), 10, 20, 30)

	recs, err := Align(prices, moon)
	assert.Nil(t, recs)

	var noOverlap *model.NoOverlapError
	require.True(t, errors.As(err, &noOverlap))
	assert.Equal(t, 2, noOverlap.PriceCount)
	assert.Equal(t, 3, noOverlap.MoonCount)
}

func TestAlign_EmptyInputs(t *testing.T) {
	_, err := Align(nil, nil)
	var noOverlap *model.NoOverlapError
	assert.True(t, errors.As(err, &noOverlap))
}
