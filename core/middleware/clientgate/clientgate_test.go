package clientgate_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"catalog-service/core/clock"
	"catalog-service/core/middleware/clientgate"
	"catalog-service/core/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(maxAttempts int) (*fiber.App, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		MaxAttempts:   maxAttempts,
		WindowSeconds: 60,
	}, clk)

	app := fiber.New()
	app.Use(clientgate.New(limiter, zap.NewNop()))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app, clk
}

func TestMissingClientID(t *testing.T) {
	app, _ := setupApp(10)

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	// The rejection still attaches a generated request id.
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestClientIDPassesAndSetsHeaders(t *testing.T) {
	app, _ := setupApp(10)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "test-client")
	req.Header.Set("X-Request-Id", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "test-client", resp.Header.Get("X-Client-Id"))
}

func TestGeneratesRequestID(t *testing.T) {
	app, _ := setupApp(10)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "test-client")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestRateLimitBlocksAfterThreshold(t *testing.T) {
	app, _ := setupApp(2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Client-Id", "c1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	app, _ := setupApp(1)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// c1 used up its quota; c2 must not be blocked.
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c2")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimitRecoversAfterWindow(t *testing.T) {
	app, clk := setupApp(1)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	clk.Advance(61 * time.Second)
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Client-Id", "c1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
