package collector

import (
	"context"
	"slices"
	"time"

	"github.com/phuslu/log"

	"MoonSentinel/internal/cache"
	"MoonSentinel/internal/model"
	"MoonSentinel/internal/recorder"
)

type barsKey struct {
	symbol string
	period model.Period
}

// CachedFetcher memoizes fetched bars by (symbol, period). The in-memory memo
// is consulted first, then the recorder's persistent copy; both honor the
// same TTL. Hits return copies, so callers cannot alter cached data.
type CachedFetcher struct {
	Fetcher  Fetcher
	memo     *cache.Memo[barsKey, []model.PricePoint]
	recorder recorder.Recorder
}

// NewCachedFetcher wraps f. rec may be nil.
func NewCachedFetcher(f Fetcher, ttl time.Duration, rec recorder.Recorder) *CachedFetcher {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &CachedFetcher{
		Fetcher:  f,
		memo:     cache.New[barsKey, []model.PricePoint](ttl, 32),
		recorder: rec,
	}
}

func (c *CachedFetcher) Name() string { return c.Fetcher.Name() }

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	key := barsKey{symbol: symbol, period: period}
	if bars, ok := c.memo.Get(key); ok {
		log.Debug().Str("symbol", symbol).Str("period", string(period)).Msg("price cache hit (memory)")
		return slices.Clone(bars), nil
	}

	bars, ok, err := c.recorder.LoadBars(symbol, period, c.memo.TTL())
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("load cached bars failed")
	} else if ok {
		log.Debug().Str("symbol", symbol).Str("period", string(period)).Msg("price cache hit (sqlite)")
		return bars, nil
	}

	start := time.Now()
	bars, err = c.Fetcher.FetchDailyBars(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("provider", c.Fetcher.Name()).
		Str("symbol", symbol).
		Str("period", string(period)).
		Int("bars", len(bars)).
		Dur("took", time.Since(start)).
		Msg("price bars fetched")

	c.memo.Set(key, slices.Clone(bars))
	if err := c.recorder.SaveBars(symbol, period, bars); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("save bars to recorder failed")
	}
	return bars, nil
}
