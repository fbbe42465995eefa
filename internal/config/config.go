// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MatchQueueSize bounds the in-memory completed-match queue.
	MatchQueueSize int `koanf:"match_queue_size"`

	// WorkerCount sets the number of match-processing workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize caps the fixture-id dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`

	// InitialRating is assigned to teams on first sight.
	InitialRating float64 `koanf:"initial_rating"`

	// OutOfWindowFriendlyImportance is the importance multiplier for
	// friendlies played outside an International Match Calendar window.
	// The upstream rule set has carried both 0.5 and 5 for this value;
	// it is configurable until the product owner settles it.
	OutOfWindowFriendlyImportance float64 `koanf:"out_of_window_friendly_importance"`

	// FixturesAPIToken authenticates against the fixtures provider.
	// Polling is disabled when empty.
	FixturesAPIToken string `koanf:"fixtures_api_token"`

	// FixturesBaseURL overrides the provider endpoint, mainly for tests.
	FixturesBaseURL string `koanf:"fixtures_base_url"`

	// FixturesRequestsPerMinute throttles provider calls.
	FixturesRequestsPerMinute int `koanf:"fixtures_requests_per_minute"`

	// FixturesPollIntervalMinutes sets how often completed fixtures are
	// polled.
	FixturesPollIntervalMinutes int `koanf:"fixtures_poll_interval_minutes"`

	// FixturesLookbackDays bounds how far back completed fixtures are
	// requested on each poll.
	FixturesLookbackDays int `koanf:"fixtures_lookback_days"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                      "info",
		Addr:                          ":9080",
		MatchQueueSize:                10_000,
		WorkerCount:                   runtime.NumCPU() * 2,
		DedupeSize:                    100_000,
		MaxRankingsLimit:              250,
		InitialRating:                 1500,
		OutOfWindowFriendlyImportance: 5,
		FixturesRequestsPerMinute:     60,
		FixturesPollIntervalMinutes:   30,
		FixturesLookbackDays:          30,
	}
}
