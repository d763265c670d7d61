package collector

import (
	"fmt"
	"time"

	"MoonSentinel/internal/recorder"
)

// Provider names accepted by New.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "financego"
	ProviderREST      = "rest"
)

// Options selects and tunes the price provider chain.
type Options struct {
	Provider   string
	BaseURL    string
	APIKey     string
	Proxy      string
	Timeout    time.Duration
	RateLimit  int
	MaxRetries int
	CacheTTL   time.Duration
	Recorder   recorder.Recorder
}

// New builds the provider chain: cache -> retry -> provider.
func New(opts Options) (Fetcher, error) {
	var base Fetcher
	switch opts.Provider {
	case "", ProviderYahoo:
		base = NewYahooFetcher(opts.Proxy, opts.Timeout, opts.RateLimit)
	case ProviderFinanceGo:
		base = NewFinanceGoFetcher(opts.Proxy, opts.Timeout)
	case ProviderREST:
		if opts.BaseURL == "" {
			return nil, errNotConfigured
		}
		base = NewRESTFetcher(opts.BaseURL, opts.APIKey, opts.Proxy, opts.Timeout)
	default:
		return nil, fmt.Errorf("unknown data provider %q", opts.Provider)
	}
	return NewCachedFetcher(NewRetryFetcher(base, opts.MaxRetries), opts.CacheTTL, opts.Recorder), nil
}
