package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors for the two upstream failure modes. Both abort the current
// sync phase; the next scheduled run may succeed once upstream recovers.
var (
	// ErrUnavailable covers transport failures, timeouts, and non-success
	// statuses after all retries are exhausted.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrMalformed covers payloads that do not parse as the expected shape.
	ErrMalformed = errors.New("upstream payload malformed")
)

// RawRating is the optional rating block attached to upstream products.
type RawRating struct {
	Rate  *float64 `json:"rate"`
	Count *int64   `json:"count"`
}

// RawProduct is one upstream product record as fetched. Required attributes
// are pointers so the reconciliation engine can distinguish a missing or
// mistyped field from a zero value; a record that fails to decode at all
// comes through with every required field nil.
type RawProduct struct {
	ID          *int64     `json:"id"`
	Title       *string    `json:"title"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Image       *string    `json:"image"`
	Rating      *RawRating `json:"rating"`
}

// Client fetches categories and products from the external feed. It is
// stateless across invocations; every call is an independent GET with the
// configured timeout, retry count, and fixed backoff.
type Client struct {
	baseURL string
	retries int
	backoff time.Duration
	http    *http.Client
}

// NewClient creates a feed client from config.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL: cfg.BaseURL,
		retries: retries,
		backoff: time.Duration(cfg.RetryBackoffMS) * time.Millisecond,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// FetchCategories returns the upstream category names. The top level must be
// a JSON array; elements that are not strings decay to "" so one junk element
// never fails the batch (the engine counts them as skips).
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/products/categories")
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: expected array of strings: %v", ErrMalformed, err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			name = ""
		}
		names = append(names, name)
	}
	return names, nil
}

// FetchProducts returns the upstream product records. The top level must be
// a JSON array; individual records that fail to decode are passed through as
// zero values so one bad record never fails the batch.
func (c *Client) FetchProducts(ctx context.Context) ([]RawProduct, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: expected array of objects: %v", ErrMalformed, err)
	}

	products := make([]RawProduct, 0, len(items))
	for _, item := range items {
		var p RawProduct
		if err := json.Unmarshal(item, &p); err != nil {
			p = RawProduct{}
		}
		products = append(products, p)
	}
	return products, nil
}

// get performs the request with retries and fixed backoff between attempts.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 && c.backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(c.backoff):
			}
		}

		body, err := c.attempt(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, url, lastErr)
}

func (c *Client) attempt(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
