package config

import (
	"time"
)

// RateLimitRule is a token bucket shape for one route group: Capacity
// tokens, refilled RefillTokens at a time every RefillInterval.
type RateLimitRule struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
}

// RateLimitConfig carries the limiter switches shared by every rule plus
// the per-surface rules. The write surfaces get their own buckets because
// their declared limits differ: comments 10/min, reviews 5/min, uploads
// 10/min, all keyed by client IP.
type RateLimitConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
	Debug   bool

	Comments RateLimitRule
	Reviews  RateLimitRule
	Uploads  RateLimitRule
}

// LoadRateLimitConfig reads the limiter settings from the environment. The
// defaults implement the documented contract; the env vars exist to loosen
// or tighten it per deployment without a rebuild.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("RATE_LIMIT_TTL", "10m")),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:   getenv("RATE_LIMIT_DEBUG", "false") == "true",

		Comments: loadRule("COMMENTS", 10, time.Minute),
		Reviews:  loadRule("REVIEWS", 5, time.Minute),
		Uploads:  loadRule("UPLOADS", 10, time.Minute),
	}
	minTTL := 5 * time.Minute
	if cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

// loadRule builds one rule from RATE_LIMIT_<NAME>_* variables, defaulting
// to capacity requests per window with a full refill each window.
func loadRule(name string, capacity int, window time.Duration) RateLimitRule {
	r := RateLimitRule{
		Capacity:       atoiDefault(getenv("RATE_LIMIT_"+name+"_CAPACITY", ""), capacity),
		RefillInterval: parseDur(getenv("RATE_LIMIT_"+name+"_WINDOW", window.String())),
	}
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = window
	}
	// refill the whole bucket once per window
	r.RefillTokens = r.Capacity
	return r
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n := atoi(s); n != 0 {
		return n
	}
	return def
}
