// Package analysis runs the moon/price correlation pipeline end to end.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"MoonSentinel/internal/calculator"
	"MoonSentinel/internal/collector"
	"MoonSentinel/internal/model"
	"MoonSentinel/internal/strategy"
)

// MoonBuilder produces the daily illumination series for a date range.
// Implemented by *lunar.Builder and *lunar.CachedBuilder.
type MoonBuilder interface {
	Build(ctx context.Context, start, end time.Time) ([]model.MoonPoint, error)
}

// Analyzer owns the collaborators of one asset's analysis. Each Run is
// independent and returns a report owned by the caller.
type Analyzer struct {
	fetcher      collector.Fetcher
	moon         MoonBuilder
	asset        model.Asset
	fetchTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// New creates an Analyzer. fetchTimeout <= 0 leaves the fetch bounded only by
// the caller's context.
func New(fetcher collector.Fetcher, moon MoonBuilder, asset model.Asset, fetchTimeout time.Duration) *Analyzer {
	return &Analyzer{
		fetcher:      fetcher,
		moon:         moon,
		asset:        asset,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Asset returns the analyzed instrument.
func (a *Analyzer) Asset() model.Asset { return a.asset }

// Run executes fetch, moon build, align, correlate, classify and narrate for
// period. It returns a report with at least one aligned record, or one of
// *model.DataUnavailableError, *model.ComputationError, *model.NoOverlapError.
func (a *Analyzer) Run(ctx context.Context, period model.Period) (*model.AnalysisReport, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unsupported period %q", period)
	}
	started := a.now()

	prices, err := a.fetchPrices(ctx, period)
	if err != nil {
		return nil, err
	}

	start, end := dateRange(prices)
	moon, err := a.moon.Build(ctx, start, end)
	if err != nil {
		var ce *model.ComputationError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, fmt.Errorf("build moon series: %w", err)
	}

	records, err := calculator.Align(prices, moon)
	if err != nil {
		return nil, err
	}

	corr, err := calculator.Pearson(calculator.Closes(records), calculator.Illuminations(records))
	if err != nil {
		return nil, fmt.Errorf("correlate: %w", err)
	}

	category, text, stats := strategy.Narrate(a.asset.Name, corr.Coefficient, records)
	report := &model.AnalysisReport{
		ID:                a.newID(),
		Asset:             a.asset,
		Period:            period,
		GeneratedAt:       a.now(),
		AlignedRecords:    records,
		Correlation:       corr,
		Verdict:           strategy.ClassifyVerdict(corr.Coefficient),
		NarrativeCategory: category,
		NarrativeText:     text,
		Summary:           stats,
	}

	log.Info().
		Str("report_id", report.ID).
		Str("symbol", a.asset.Symbol).
		Str("period", string(period)).
		Int("prices", len(prices)).
		Int("moon_days", len(moon)).
		Int("aligned", len(records)).
		Float64("r", corr.Coefficient).
		Float64("p", corr.PValue).
		Str("verdict", string(report.Verdict)).
		Dur("took", a.now().Sub(started)).
		Msg("analysis complete")
	return report, nil
}

func (a *Analyzer) fetchPrices(ctx context.Context, period model.Period) ([]model.PricePoint, error) {
	fctx := ctx
	if a.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()
	}

	prices, err := a.fetcher.FetchDailyBars(fctx, a.asset.Symbol, period)
	if err != nil {
		log.Error().Err(err).Str("symbol", a.asset.Symbol).Str("period", string(period)).Msg("price fetch failed")
		return nil, &model.DataUnavailableError{Asset: a.asset.Symbol, Period: period, Err: err}
	}
	if len(prices) == 0 {
		return nil, &model.DataUnavailableError{Asset: a.asset.Symbol, Period: period}
	}
	return prices, nil
}

// dateRange returns the first and last civil date covered by prices.
func dateRange(prices []model.PricePoint) (start, end time.Time) {
	start, end = model.DateOf(prices[0].Date), model.DateOf(prices[0].Date)
	for _, p := range prices[1:] {
		d := model.DateOf(p.Date)
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}
