package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration validation errors.
var (
	ErrMissingDSN          = errors.New("database.dsn is required")
	ErrMissingSearchURL    = errors.New("search.base_url is required")
	ErrInvalidQueryDelay   = errors.New("collector.query_delay_ms must be non-negative")
	ErrInvalidVenueDelay   = errors.New("collector.venue_delay_ms must be non-negative")
	ErrInvalidMaxQueries   = errors.New("collector.max_queries must be at least 1")
	ErrInvalidRetentionAge = errors.New("retention.max_age_days must be at least 1")
)

// Config is the top level structure matching config/config.yaml.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Search    SearchConfig    `mapstructure:"search"`
	Collector CollectorConfig `mapstructure:"collector"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Retention RetentionConfig `mapstructure:"retention"`
	Report    ReportConfig    `mapstructure:"report"`
	Feeds     []FeedConfig    `mapstructure:"feeds"`
}

// ServerConfig holds the HTTP trigger surface settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"` // listen port
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

// DatabaseConfig holds the catalog store connection settings.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // postgres URL
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // pool upper bound
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // idle pool size
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // connection recycle age
}

// SearchConfig holds the external search provider settings. The provider
// exposes two channels (blog posts, news articles) under one base URL.
type SearchConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // provider API root
	ClientID     string `mapstructure:"client_id"`     // auth header value
	ClientSecret string `mapstructure:"client_secret"` // auth header value
	Display      int    `mapstructure:"display"`       // results per query
	Sort         string `mapstructure:"sort"`          // provider sort order
	Timeout      int    `mapstructure:"timeout"`       // request timeout, seconds
	Proxy        string `mapstructure:"proxy"`         // optional outbound proxy
}

// CollectorConfig tunes the per-run fan out and rate limiting.
type CollectorConfig struct {
	QueryDelayMs int `mapstructure:"query_delay_ms"` // pause between queries
	VenueDelayMs int `mapstructure:"venue_delay_ms"` // pause between venues
	MaxQueries   int `mapstructure:"max_queries"`    // query builder cap per venue
}

// SchedulerConfig controls the timer driven jobs.
type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`  // register jobs at startup
	Timezone string `mapstructure:"timezone"` // IANA zone for fire times
}

// RetentionConfig controls the cleanup sweep.
type RetentionConfig struct {
	MaxAgeDays int `mapstructure:"max_age_days"` // unverified rows older than this are removed
}

// ReportConfig controls the run report artifacts.
type ReportConfig struct {
	Dir string `mapstructure:"dir"` // directory for dated JSON summaries
}

// FeedConfig names one RSS source for the feed channel.
type FeedConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// LoadConfig reads config/config.yaml, with .env loaded first so credentials
// never have to live in the committed file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	overrideFromEnv(&cfg)
	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv lets the environment win for sensitive values.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SEARCH_CLIENT_ID"); v != "" {
		cfg.Search.ClientID = v
	}
	if v := os.Getenv("SEARCH_CLIENT_SECRET"); v != "" {
		cfg.Search.ClientSecret = v
	}
	if v := os.Getenv("SEARCH_PROXY"); v != "" {
		cfg.Search.Proxy = v
	}
}

// ApplyDefaults fills unset fields with working values.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Search.Display <= 0 {
		cfg.Search.Display = 20
	}
	if cfg.Search.Sort == "" {
		cfg.Search.Sort = "date"
	}
	if cfg.Search.Timeout <= 0 {
		cfg.Search.Timeout = 10
	}
	if cfg.Collector.QueryDelayMs == 0 {
		cfg.Collector.QueryDelayMs = 50
	}
	if cfg.Collector.VenueDelayMs == 0 {
		cfg.Collector.VenueDelayMs = 200
	}
	if cfg.Collector.MaxQueries <= 0 {
		cfg.Collector.MaxQueries = 6
	}
	if cfg.Scheduler.Timezone == "" {
		cfg.Scheduler.Timezone = "Asia/Seoul"
	}
	if cfg.Retention.MaxAgeDays <= 0 {
		cfg.Retention.MaxAgeDays = 180
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "reports"
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	if c.Search.BaseURL == "" {
		return ErrMissingSearchURL
	}
	if c.Collector.QueryDelayMs < 0 {
		return ErrInvalidQueryDelay
	}
	if c.Collector.VenueDelayMs < 0 {
		return ErrInvalidVenueDelay
	}
	if c.Collector.MaxQueries < 1 {
		return ErrInvalidMaxQueries
	}
	if c.Retention.MaxAgeDays < 1 {
		return ErrInvalidRetentionAge
	}
	return nil
}

// QueryDelay returns the inter-query pause as a duration.
func (c *CollectorConfig) QueryDelay() time.Duration {
	return time.Duration(c.QueryDelayMs) * time.Millisecond
}

// VenueDelay returns the inter-venue pause as a duration.
func (c *CollectorConfig) VenueDelay() time.Duration {
	return time.Duration(c.VenueDelayMs) * time.Millisecond
}
