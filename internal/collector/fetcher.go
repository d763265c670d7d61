package collector

import (
	"context"
	"errors"

	"MoonSentinel/internal/model"
)

// ErrNoData is returned when a provider answers successfully but without bars.
var ErrNoData = errors.New("no price data returned")

// Fetcher defines the interface for fetching daily closes of one asset.
// Returned bars are sorted ascending by date.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error)
	Name() string
}
