// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/newsburst/headline-crawler/internal/crawler"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// CrawlerConfig governs the crawl engine.
type CrawlerConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	UserAgent         string `mapstructure:"user_agent"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	MaxAttempts       int    `mapstructure:"max_attempts"`
	RetryBackoffMs    int    `mapstructure:"retry_backoff_ms"`
	FallbackPageCount int    `mapstructure:"fallback_page_count"`
	PagingSelector    string `mapstructure:"paging_selector"`
	Workers           int    `mapstructure:"workers"`
	WorkerCap         int    `mapstructure:"worker_cap"`
}

// OutputConfig sets where crawl snapshots are written.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
	v.SetDefault("crawler.base_url", crawler.DefaultBaseURL)
	v.SetDefault("crawler.user_agent", crawler.DefaultUserAgent)
	v.SetDefault("crawler.timeout_seconds", int(crawler.DefaultRequestTimeout/time.Second))
	v.SetDefault("crawler.max_attempts", crawler.DefaultMaxAttempts)
	v.SetDefault("crawler.retry_backoff_ms", int(crawler.DefaultRetryBackoff/time.Millisecond))
	v.SetDefault("crawler.fallback_page_count", crawler.DefaultFallbackPageCount)
	v.SetDefault("crawler.paging_selector", crawler.DefaultPagingSelector)
	v.SetDefault("crawler.workers", 0)
	v.SetDefault("crawler.worker_cap", crawler.DefaultWorkerCap)
	v.SetDefault("output.path", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return c.EngineConfig().Validate()
}

// EngineConfig converts the Viper-facing crawler section into the engine's
// plain configuration struct.
func (c Config) EngineConfig() crawler.Config {
	return crawler.Config{
		BaseURL:           c.Crawler.BaseURL,
		UserAgent:         c.Crawler.UserAgent,
		RequestTimeout:    time.Duration(c.Crawler.TimeoutSeconds) * time.Second,
		MaxAttempts:       c.Crawler.MaxAttempts,
		RetryBackoff:      time.Duration(c.Crawler.RetryBackoffMs) * time.Millisecond,
		FallbackPageCount: c.Crawler.FallbackPageCount,
		PagingSelector:    c.Crawler.PagingSelector,
		Workers:           c.Crawler.Workers,
		WorkerCap:         c.Crawler.WorkerCap,
	}
}
