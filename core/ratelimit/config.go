package ratelimit

// Config holds configuration for the per-client rate limiter.
type Config struct {
	// MaxAttempts is the number of accepted requests per window per client.
	MaxAttempts int `mapstructure:"rate_limit_per_minute" default:"60"`
	// WindowSeconds is the length of the fixed window in seconds.
	WindowSeconds int `mapstructure:"rate_limit_decay_seconds" default:"60"`
}
