package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"MoonSentinel/internal/model"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Asset struct {
		Symbol string `yaml:"symbol"`
		Name   string `yaml:"name"`
	} `yaml:"asset"`
	DataSource struct {
		Provider   string        `yaml:"provider"`
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout"`
		RateLimit  int           `yaml:"rate_limit"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"data_source"`
	Analysis struct {
		DefaultPeriod string        `yaml:"default_period"`
		CacheTTL      time.Duration `yaml:"cache_ttl"`
		MoonWorkers   int           `yaml:"moon_workers"`
	} `yaml:"analysis"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
		Period       string `yaml:"period"`
	} `yaml:"schedule"`
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ASSET_SYMBOL":       &c.Asset.Symbol,
		"ASSET_NAME":         &c.Asset.Name,
		"DATA_PROVIDER":      &c.DataSource.Provider,
		"REST_BASE_URL":      &c.DataSource.BaseURL,
		"REST_API_KEY":       &c.DataSource.APIKey,
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"HTTPS_PROXY":        &c.Proxy,
		"SQLITE_PATH":        &c.Cache.SQLitePath,
		"CRON_ANALYSIS":      &c.Schedule.AnalysisCron,
		"SERVER_ADDR":        &c.Server.Addr,
		"LOG_LEVEL":          &c.Logging.Level,
		"DEFAULT_PERIOD":     &c.Analysis.DefaultPeriod,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Analysis.CacheTTL = d
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_RETRIES: %w", err)
		}
		c.DataSource.MaxRetries = n
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Asset.Symbol == "" {
		c.Asset.Symbol = model.DefaultSymbol
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.DataSource.RateLimit == 0 {
		c.DataSource.RateLimit = 2
	}
	if c.DataSource.MaxRetries == 0 {
		c.DataSource.MaxRetries = 3
	}
	if c.Analysis.DefaultPeriod == "" {
		c.Analysis.DefaultPeriod = string(model.Period6Months)
	}
	if c.Analysis.CacheTTL == 0 {
		c.Analysis.CacheTTL = time.Hour
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 0 9 * * 1"
	}
	if c.Schedule.Period == "" {
		c.Schedule.Period = c.Analysis.DefaultPeriod
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// AssetInfo returns the configured instrument with its display name resolved.
func (c *Config) AssetInfo() model.Asset {
	return model.NewAsset(c.Asset.Symbol, c.Asset.Name)
}

// DefaultPeriod returns the parsed default analysis period.
func (c *Config) DefaultPeriod() model.Period {
	p, err := model.ParsePeriod(c.Analysis.DefaultPeriod)
	if err != nil {
		return model.Period6Months
	}
	return p
}

// SchedulePeriod returns the parsed period of scheduled reports.
func (c *Config) SchedulePeriod() model.Period {
	p, err := model.ParsePeriod(c.Schedule.Period)
	if err != nil {
		return c.DefaultPeriod()
	}
	return p
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "financego":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo, financego or rest, got %q", c.DataSource.Provider)
	}
	if _, err := model.ParsePeriod(c.Analysis.DefaultPeriod); err != nil {
		return fmt.Errorf("analysis.default_period: %w", err)
	}
	if _, err := model.ParsePeriod(c.Schedule.Period); err != nil {
		return fmt.Errorf("schedule.period: %w", err)
	}
	if c.Analysis.CacheTTL < 0 {
		return fmt.Errorf("analysis.cache_ttl must not be negative")
	}
	if c.DataSource.MaxRetries < 0 {
		return fmt.Errorf("data_source.max_retries must not be negative")
	}
	if c.Analysis.MoonWorkers < 0 {
		return fmt.Errorf("analysis.moon_workers must not be negative")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// ValidateBot additionally requires Telegram credentials.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
