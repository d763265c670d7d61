package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"MoonSentinel/internal/model"
)

// DefaultYahooBaseURL is the Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	limiter   *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. requestsPerSecond <= 0
// disables rate limiting.
func NewYahooFetcher(proxyURL string, timeout time.Duration, requestsPerSecond int) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
	return &YahooFetcher{
		BaseURL: DefaultYahooBaseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"BTC":    "BTC-USD",
			"ETH":    "ETH-USD",
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
		},
		limiter: limiter,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// exchangeLocation resolves the zone bars are dated in. Yahoo stamps daily
// bars at the session open, so the civil date must be read in exchange time.
func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if gmtOffset != 0 {
		return time.FixedZone("exchange", gmtOffset)
	}
	return time.UTC
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]model.PricePoint, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo rate limit: %w", err)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)
	bars := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		c := toFloat(closes[i])
		if c <= 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.PricePoint{
			Date:  time.Unix(ts, 0).In(loc),
			Close: decimal.NewFromFloat(c),
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// FetchDailyBars maps the period straight onto Yahoo's range parameter.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("yahoo: unsupported period %q", period)
	}
	return f.fetchChart(ctx, symbol, "1d", string(period))
}
