package main

import (
	"github.com/phuslu/log"

	"MoonSentinel/internal/analysis"
	"MoonSentinel/internal/collector"
	"MoonSentinel/internal/config"
	"MoonSentinel/internal/lunar"
	"MoonSentinel/internal/recorder"
)

// app holds the wired collaborators shared by every command.
type app struct {
	cfg      *config.Config
	analyzer *analysis.Analyzer
	recorder recorder.Recorder
}

func newApp(cfg *config.Config) (*app, error) {
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Cache.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite bar cache failed, using memory only")
		} else {
			rec = sr
		}
	}

	fetcher, err := collector.New(collector.Options{
		Provider:   cfg.DataSource.Provider,
		BaseURL:    cfg.DataSource.BaseURL,
		APIKey:     cfg.DataSource.APIKey,
		Proxy:      cfg.Proxy,
		Timeout:    cfg.DataSource.Timeout,
		RateLimit:  cfg.DataSource.RateLimit,
		MaxRetries: cfg.DataSource.MaxRetries,
		CacheTTL:   cfg.Analysis.CacheTTL,
		Recorder:   rec,
	})
	if err != nil {
		rec.Close()
		return nil, err
	}

	builder := lunar.NewBuilder(lunar.NewMeeusModel(), cfg.Analysis.MoonWorkers)
	moon := lunar.NewCachedBuilder(builder, cfg.Analysis.CacheTTL)
	asset := cfg.AssetInfo()

	log.Info().
		Str("provider", fetcher.Name()).
		Str("symbol", asset.Symbol).
		Str("asset", asset.Name).
		Dur("cache_ttl", cfg.Analysis.CacheTTL).
		Msg("analyzer ready")

	return &app{
		cfg:      cfg,
		analyzer: analysis.New(fetcher, moon, asset, cfg.DataSource.Timeout),
		recorder: rec,
	}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
}
