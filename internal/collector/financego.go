package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"MoonSentinel/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the finance-go chart client.
// Requests go through a private backend, so the configured proxy and timeout
// apply and the request context cancels in-flight calls.
type FinanceGoFetcher struct {
	client chart.Client
	now    func() time.Time
}

// NewFinanceGoFetcher creates a finance-go backed fetcher. An empty proxyURL
// connects directly; timeout <= 0 uses 30s.
func NewFinanceGoFetcher(proxyURL string, timeout time.Duration) *FinanceGoFetcher {
	return newFinanceGoFetcher(finance.YFinURL, proxyURL, timeout)
}

func newFinanceGoFetcher(baseURL, proxyURL string, timeout time.Duration) *FinanceGoFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	backend := &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        baseURL,
		HTTPClient: &http.Client{Timeout: timeout, Transport: transport},
	}
	return &FinanceGoFetcher{client: chart.Client{B: backend}, now: time.Now}
}

func (f *FinanceGoFetcher) Name() string { return "financego" }

func (f *FinanceGoFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("financego: unsupported period %q", period)
	}
	end := f.now().UTC()
	start := end.AddDate(0, 0, -period.Days())

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx
	iter := f.client.Get(params)

	bars := make([]model.PricePoint, 0, period.Days())
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar := iter.Bar()
		if bar == nil || !bar.Close.IsPositive() {
			continue
		}
		bars = append(bars, model.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: bar.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("financego chart %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}
