package config

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Database.DSN = "postgres://localhost:5432/exhibitsync"
	cfg.Search.BaseURL = "https://openapi.example.com"
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, ErrMissingDSN},
		{"missing search url", func(c *Config) { c.Search.BaseURL = "" }, ErrMissingSearchURL},
		{"negative query delay", func(c *Config) { c.Collector.QueryDelayMs = -1 }, ErrInvalidQueryDelay},
		{"negative venue delay", func(c *Config) { c.Collector.VenueDelayMs = -1 }, ErrInvalidVenueDelay},
		{"zero max queries", func(c *Config) { c.Collector.MaxQueries = 0 }, ErrInvalidMaxQueries},
		{"zero retention", func(c *Config) { c.Retention.MaxAgeDays = 0 }, ErrInvalidRetentionAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Search.Display != 20 {
		t.Errorf("Display = %d, want 20", cfg.Search.Display)
	}
	if cfg.Search.Sort != "date" {
		t.Errorf("Sort = %q, want date", cfg.Search.Sort)
	}
	if cfg.Scheduler.Timezone != "Asia/Seoul" {
		t.Errorf("Timezone = %q, want Asia/Seoul", cfg.Scheduler.Timezone)
	}
	if cfg.Retention.MaxAgeDays != 180 {
		t.Errorf("MaxAgeDays = %d, want 180", cfg.Retention.MaxAgeDays)
	}
	if cfg.Collector.QueryDelay() != 50*time.Millisecond {
		t.Errorf("QueryDelay = %v, want 50ms", cfg.Collector.QueryDelay())
	}
	if cfg.Collector.VenueDelay() != 200*time.Millisecond {
		t.Errorf("VenueDelay = %v, want 200ms", cfg.Collector.VenueDelay())
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Search.Display = 50
	cfg.Collector.MaxQueries = 3
	ApplyDefaults(cfg)

	if cfg.Search.Display != 50 {
		t.Errorf("Display = %d, want 50 preserved", cfg.Search.Display)
	}
	if cfg.Collector.MaxQueries != 3 {
		t.Errorf("MaxQueries = %d, want 3 preserved", cfg.Collector.MaxQueries)
	}
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env-host:5432/envdb")
	t.Setenv("SEARCH_CLIENT_ID", "env-id")
	t.Setenv("SEARCH_CLIENT_SECRET", "env-secret")

	cfg := validConfig()
	overrideFromEnv(cfg)

	if cfg.Database.DSN != "postgres://env-host:5432/envdb" {
		t.Errorf("DSN = %q, env override did not win", cfg.Database.DSN)
	}
	if cfg.Search.ClientID != "env-id" || cfg.Search.ClientSecret != "env-secret" {
		t.Errorf("credentials = %q/%q, env override did not win", cfg.Search.ClientID, cfg.Search.ClientSecret)
	}
}
