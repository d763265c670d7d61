package collector

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/phuslu/log"

	"MoonSentinel/internal/model"
)

// RetryFetcher retries a Fetcher with bounded exponential backoff. Context
// errors and ErrNoData are not retried.
type RetryFetcher struct {
	Fetcher         Fetcher
	MaxRetries      uint64
	InitialInterval time.Duration
}

// NewRetryFetcher wraps f with maxRetries additional attempts.
func NewRetryFetcher(f Fetcher, maxRetries int) *RetryFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryFetcher{Fetcher: f, MaxRetries: uint64(maxRetries), InitialInterval: 500 * time.Millisecond}
}

func (r *RetryFetcher) Name() string { return r.Fetcher.Name() }

func (r *RetryFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	var bars []model.PricePoint
	op := func() error {
		b, err := r.Fetcher.FetchDailyBars(ctx, symbol, period)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrNoData) {
				return backoff.Permanent(err)
			}
			return err
		}
		bars = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, r.MaxRetries), ctx)

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		log.Warn().
			Str("provider", r.Fetcher.Name()).
			Str("symbol", symbol).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Err(err).
			Msg("price fetch failed, retrying")
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return bars, nil
}
