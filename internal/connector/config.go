// Package connector implements the mailbox-driven state machine of
// spec.md §4.6/§5: it owns the store, the callback registry, the
// WebSocket handle, and the ping timer, and serializes all state mutation
// inside a single-consumer goroutine.
package connector

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// Config is the immutable value the connector's ConfigSource collaborator
// contract yields (spec.md §1, §6). LoadConfig parses it from the process
// environment; loading .env files is left to the CLI driver. An embedder can
// also build a Config directly and call Validate, without the CLI driver.
type Config struct {
	BaseURI     string `env:"SENTINEL_BASE_URI,required"`
	WsURI       string `env:"SENTINEL_WS_URI,required"`
	AccessToken string `env:"SENTINEL_ACCESS_TOKEN,required"`
	MaxHistory  int    `env:"SENTINEL_MAX_HISTORY" envDefault:"10"`

	// PingInterval <= 0 disables liveness pings entirely (spec.md §4.5,
	// §8 boundary behavior).
	PingInterval time.Duration `env:"SENTINEL_PING_INTERVAL" envDefault:"0"`

	// Outbound HTTP rate limiting for bootstrap and record-fetch fan-out.
	HTTPRatePerSec float64 `env:"SENTINEL_HTTP_RATE_PER_SEC" envDefault:"20"`
	HTTPRateBurst  int     `env:"SENTINEL_HTTP_RATE_BURST" envDefault:"5"`
}

// LoadConfig parses Config from the process environment, grounded on the
// teacher's internal/config.Config loading convention
// (github.com/caarlos0/env/v11 struct tags).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, sentinel.New(sentinel.KindConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the invariants spec.md §6 requires of the core's
// recognized options.
func (c Config) Validate() error {
	if c.BaseURI == "" {
		return sentinel.Newf(sentinel.KindConfigParse, "base_uri must not be empty")
	}
	if c.WsURI == "" {
		return sentinel.Newf(sentinel.KindConfigParse, "ws_uri must not be empty")
	}
	if c.AccessToken == "" {
		return sentinel.Newf(sentinel.KindConfigParse, "access_token must not be empty")
	}
	if c.MaxHistory <= 0 {
		return sentinel.Newf(sentinel.KindConfigParse, "max_history must be positive, got %d", c.MaxHistory)
	}
	if c.PingInterval < 0 {
		return sentinel.Newf(sentinel.KindConfigParse, "ping_interval must not be negative")
	}
	return nil
}
