package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"MoonSentinel/internal/model"
)

// RESTFetcher implements Fetcher against a generic bars endpoint:
//
//	GET {base}/api/v1/bars/daily?symbol=BTC-USD&period=6mo
//	[{"timestamp": 1717200000, "close": "67432.10"}, ...]
type RESTFetcher struct {
	client *resty.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		c.SetProxy(proxyURL)
	}
	return &RESTFetcher{client: c}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API. Close may be a JSON
// number or a decimal string.
type restBar struct {
	Timestamp int64           `json:"timestamp"`
	Close     decimal.Decimal `json:"close"`
}

type restError struct {
	Error string `json:"error"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	var raw []restBar
	var apiErr restError
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"period": string(period),
		}).
		SetResult(&raw).
		SetError(&apiErr).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.String()
		}
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), msg)
	}

	bars := make([]model.PricePoint, 0, len(raw))
	for _, rb := range raw {
		if !rb.Close.IsPositive() {
			continue
		}
		bars = append(bars, model.PricePoint{
			Date:  time.Unix(rb.Timestamp, 0).UTC(),
			Close: rb.Close,
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// errNotConfigured is returned by the factory when the REST provider lacks a base URL.
var errNotConfigured = errors.New("rest provider requires data_source.base_url")
