package upstream

// Config holds configuration for the upstream product feed client.
type Config struct {
	// BaseURL is the feed root; endpoints are {base_url}/products and
	// {base_url}/products/categories.
	BaseURL string `mapstructure:"base_url" default:"https://fakestoreapi.com"`
	// TimeoutSeconds bounds each HTTP attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryBackoffMS is the fixed delay between attempts in milliseconds.
	RetryBackoffMS int `mapstructure:"retry_backoff_ms" default:"100"`
}
