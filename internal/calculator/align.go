package calculator

import (
	"sort"
	"time"

	"MoonSentinel/internal/model"
)

// Align inner-joins prices and moon points on calendar date. Time-of-day is
// discarded before comparing. When an input repeats a date only its first
// occurrence is used. The result is ascending by date and never empty; an
// empty join returns a *model.NoOverlapError.
func Align(prices []model.PricePoint, moon []model.MoonPoint) ([]model.AlignedRecord, error) {
	moonByDate := make(map[time.Time]model.MoonPoint, len(moon))
	for _, m := range moon {
		d := model.DateOf(m.Date)
		if _, dup := moonByDate[d]; dup {
			continue
		}
		moonByDate[d] = m
	}

	seen := make(map[time.Time]struct{}, len(prices))
	records := make([]model.AlignedRecord, 0, min(len(prices), len(moonByDate)))
	for _, p := range prices {
		d := model.DateOf(p.Date)
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}

		m, ok := moonByDate[d]
		if !ok {
			continue
		}
		records = append(records, model.AlignedRecord{
			Date:         d,
			Close:        p.Close,
			Illumination: m.Illumination,
			IsFullMoon:   m.IsFullMoon,
		})
	}

	if len(records) == 0 {
		return nil, &model.NoOverlapError{PriceCount: len(prices), MoonCount: len(moon)}
	}

	// Providers deliver ascending bars; this only matters for unsorted input.
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}
