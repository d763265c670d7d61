package recorder

import (
	"time"

	"MoonSentinel/internal/model"
)

// Recorder is the persistent tier of the price bar cache. Bars are keyed by
// (symbol, period) and stamped with the time they were fetched.
type Recorder interface {
	// LoadBars returns the stored bars if they were fetched less than maxAge
	// ago. ok is false on a miss or an expired entry.
	LoadBars(symbol string, period model.Period, maxAge time.Duration) (bars []model.PricePoint, ok bool, err error)
	// SaveBars replaces the stored bars for (symbol, period).
	SaveBars(symbol string, period model.Period, bars []model.PricePoint) error
	Close() error
}
