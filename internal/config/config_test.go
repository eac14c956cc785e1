package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		AccessToken:    "token",
		APIBaseURL:     "https://api.youneedabudget.com/v1",
		ExcludedGroups: DefaultExcludedGroups,
		CurrencyCode:   "EUR",
		Locale:         "en-US",
		FetchTimeout:   15 * time.Second,
		SnapshotTTL:    5 * time.Minute,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("YNAB_ACCESS_TOKEN", "token")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.APIBaseURL != "https://api.youneedabudget.com/v1" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if !reflect.DeepEqual(cfg.ExcludedGroups, DefaultExcludedGroups) {
		t.Errorf("ExcludedGroups = %v, want defaults", cfg.ExcludedGroups)
	}
	if cfg.CurrencyCode != "EUR" || cfg.Locale != "en-US" {
		t.Errorf("display config = %q/%q, want EUR/en-US", cfg.CurrencyCode, cfg.Locale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("YNAB_ACCESS_TOKEN", "token")
	t.Setenv("PORT", "9000")
	t.Setenv("EXCLUDED_GROUPS", "Hidden Categories, Internal ")
	t.Setenv("CURRENCY_CODE", "USD")
	t.Setenv("FETCH_TIMEOUT", "30s")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	want := []string{"Hidden Categories", "Internal"}
	if !reflect.DeepEqual(cfg.ExcludedGroups, want) {
		t.Errorf("ExcludedGroups = %v, want %v", cfg.ExcludedGroups, want)
	}
	if cfg.CurrencyCode != "USD" {
		t.Errorf("CurrencyCode = %q, want USD", cfg.CurrencyCode)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("YNAB_ACCESS_TOKEN", "token")
	t.Setenv("SNAPSHOT_TTL", "not-a-duration")

	if cfg := Load(); cfg.SnapshotTTL != 5*time.Minute {
		t.Errorf("SnapshotTTL = %v, want default 5m", cfg.SnapshotTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPart string
	}{
		{
			name:     "missing token",
			mutate:   func(c *Config) { c.AccessToken = "  " },
			wantPart: "YNAB_ACCESS_TOKEN",
		},
		{
			name:     "bad port",
			mutate:   func(c *Config) { c.Port = "abc" },
			wantPart: "invalid port",
		},
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Port = "70000" },
			wantPart: "between 1 and 65535",
		},
		{
			name:     "bad URL scheme",
			mutate:   func(c *Config) { c.APIBaseURL = "ftp://example.com" },
			wantPart: "scheme",
		},
		{
			name:     "bad currency code",
			mutate:   func(c *Config) { c.CurrencyCode = "EURO" },
			wantPart: "currency code",
		},
		{
			name:     "empty locale",
			mutate:   func(c *Config) { c.Locale = "" },
			wantPart: "locale",
		},
		{
			name:     "timeout too small",
			mutate:   func(c *Config) { c.FetchTimeout = 10 * time.Millisecond },
			wantPart: "fetch timeout",
		},
		{
			name:     "TTL too large",
			mutate:   func(c *Config) { c.SnapshotTTL = 48 * time.Hour },
			wantPart: "snapshot TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err, tt.wantPart)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.AccessToken = ""
	cfg.Port = "abc"
	cfg.CurrencyCode = "X"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, part := range []string{"YNAB_ACCESS_TOKEN", "invalid port", "currency code"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("combined error missing %q: %v", part, err)
		}
	}
}
