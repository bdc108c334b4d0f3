// Package config handles configuration loading for ApexAnalysis.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration. It is built once
// at startup and passed into components by value; nothing mutates it afterwards.
type Config struct {
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"    yaml:"scrape"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"  yaml:"analysis"`
	Report    ReportConfig    `mapstructure:"report"    yaml:"report"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// NewsConfig holds news feed settings.
type NewsConfig struct {
	FeedURL     string `mapstructure:"feed_url"     yaml:"feed_url"`     // Google News RSS search template, %s = query
	NumArticles int    `mapstructure:"num_articles" yaml:"num_articles"` // candidate articles per run
	CacheTTLSec int    `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`
}

// ScrapeConfig holds content acquisition and compliance settings.
type ScrapeConfig struct {
	RespectRobots     bool   `mapstructure:"respect_robots"      yaml:"respect_robots"`
	AllowPaywalled    bool   `mapstructure:"allow_paywalled"     yaml:"allow_paywalled"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
	RequestDelaySec   int    `mapstructure:"request_delay_sec"   yaml:"request_delay_sec"` // per-host politeness delay
	UserAgent         string `mapstructure:"user_agent"          yaml:"user_agent"`
}

// SentimentConfig holds sentiment scoring settings.
type SentimentConfig struct {
	MinLength int `mapstructure:"min_length" yaml:"min_length"` // minimum text length (chars) for analysis
}

// AnalysisConfig holds batch analysis settings.
type AnalysisConfig struct {
	ConcurrentFetches int    `mapstructure:"concurrent_fetches" yaml:"concurrent_fetches"`
	DefaultPeriod     string `mapstructure:"default_period"     yaml:"default_period"` // e.g. "1y", "6mo"
}

// ReportConfig holds report persistence settings.
type ReportConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir"     yaml:"dir"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.apexanalysis/config.yaml (home directory)
//  3. /etc/apexanalysis/config.yaml (system)
//
// Environment variables override config file values.
// Format: APEX_<SECTION>_<KEY>, e.g., APEX_SCRAPE_RESPECT_ROBOTS
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".apexanalysis"))
	v.AddConfigPath("/etc/apexanalysis")

	v.SetEnvPrefix("APEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("APEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in default configuration without touching the
// filesystem or environment. Used by tests and as a construction fallback.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// News defaults
	v.SetDefault("news.feed_url", "https://news.google.com/rss/search?q=%s+stock&hl=en-US&gl=US&ceid=US:en")
	v.SetDefault("news.num_articles", 20)
	v.SetDefault("news.cache_ttl_sec", 3600)

	// Scrape defaults (compliance-first)
	v.SetDefault("scrape.respect_robots", true)
	v.SetDefault("scrape.allow_paywalled", false)
	v.SetDefault("scrape.request_timeout_sec", 15)
	v.SetDefault("scrape.request_delay_sec", 1)
	v.SetDefault("scrape.user_agent", "ApexAnalysis/1.0 (Educational Use Only)")

	// Sentiment defaults
	v.SetDefault("sentiment.min_length", 10)

	// Analysis defaults
	v.SetDefault("analysis.concurrent_fetches", 1)
	v.SetDefault("analysis.default_period", "1y")

	// Report defaults
	v.SetDefault("report.enabled", true)
	v.SetDefault("report.dir", "reports")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
