package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// RateLimitConfig configures the token bucket limiter on the JSON API.
// KeyStrategy is one of "ip", "session", "ip_route", "session_route" or
// "ip_session_route" (default).
type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"60"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"1s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	KeyStrategy    string        `envconfig:"RATE_LIMIT_KEY_STRATEGY" default:"ip_session_route"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
	Debug          bool          `envconfig:"RATE_LIMIT_DEBUG" default:"false"`

	Burst      int           `envconfig:"RATE_LIMIT_BURST"`
	RefillEach time.Duration `envconfig:"RATE_LIMIT_REFILL_EVERY"`
}

// LoadRateLimitConfig reads the limiter settings.  RATE_LIMIT_BURST
// overrides the capacity and RATE_LIMIT_REFILL_EVERY switches to one
// token per interval.  Out-of-range values are clamped, and the bucket TTL
// is at least five refill intervals.
func LoadRateLimitConfig() (RateLimitConfig, error) {
	var c RateLimitConfig
	if err := envconfig.Process("", &c); err != nil {
		return RateLimitConfig{}, err
	}
	if c.Burst > 0 {
		c.Capacity = c.Burst
	}
	if c.RefillEach > 0 {
		c.RefillTokens = 1
		c.RefillInterval = c.RefillEach
	}
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c, nil
}
