package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultExcludedGroups are the administrative category groups that never
// count as spending: internal bookkeeping, card payments, and hidden
// categories. Matched by substring against group names.
var DefaultExcludedGroups = []string{
	"Contingency",
	"Internal Master Category",
	"Credit Card Payments",
	"Hidden Categories",
}

type Config struct {
	// HTTP server
	Port string

	// Budget API
	AccessToken string
	APIBaseURL  string

	// Aggregation
	ExcludedGroups []string

	// Display
	CurrencyCode string
	Locale       string

	// Fetching
	FetchTimeout time.Duration
	SnapshotTTL  time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is folded in first when present.
func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AccessToken:    os.Getenv("YNAB_ACCESS_TOKEN"),
		APIBaseURL:     getEnv("YNAB_API_URL", "https://api.youneedabudget.com/v1"),
		ExcludedGroups: getEnvList("EXCLUDED_GROUPS", DefaultExcludedGroups),
		CurrencyCode:   getEnv("CURRENCY_CODE", "EUR"),
		Locale:         getEnv("LOCALE", "en-US"),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		SnapshotTTL:    getEnvDuration("SNAPSHOT_TTL", 5*time.Minute),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.AccessToken) == "" {
		errors = append(errors, "missing YNAB_ACCESS_TOKEN: a personal access token is required")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if len(c.CurrencyCode) != 3 {
		errors = append(errors, fmt.Sprintf("invalid currency code '%s': must be a three-letter ISO 4217 code", c.CurrencyCode))
	}
	if strings.TrimSpace(c.Locale) == "" {
		errors = append(errors, "locale cannot be empty")
	}

	if c.FetchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > 2*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at most 2 minutes", c.FetchTimeout))
	}

	if c.SnapshotTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid snapshot TTL %v: must be at least 1 second", c.SnapshotTTL))
	} else if c.SnapshotTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid snapshot TTL %v: must be at most 24 hours", c.SnapshotTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
