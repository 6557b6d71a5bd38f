package clientgate

import (
	"strconv"
	"time"

	"catalog-service/core/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header names used by the gate.
const (
	HeaderClientID  = "X-Client-Id"
	HeaderRequestID = "X-Request-Id"
)

// New returns the request gate middleware. It resolves the request
// correlation id, requires a client identity, applies the per-client rate
// limit, and emits entry/exit log records for accepted requests.
func New(limiter *ratelimit.Limiter, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Reuse the inbound request id verbatim, generate one otherwise.
		// Rejections below still carry it, so every response is traceable.
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set(HeaderRequestID, requestID)

		clientID := c.Get(HeaderClientID)
		if clientID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "missing_header",
				"message": "X-Client-Id header is required",
			})
		}

		if ok, retryAfter := limiter.Allow(clientID); !ok {
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate_limited",
				"message":     "too many requests, slow down",
				"retry_after": secs,
			})
		}

		l := log.With(
			zap.String("request_id", requestID),
			zap.String("client_id", clientID),
			zap.String("route", c.Path()),
			zap.String("method", c.Method()),
		)
		l.Info("request received")

		start := time.Now()
		err := c.Next()

		c.Set(HeaderRequestID, requestID)
		c.Set(HeaderClientID, clientID)

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			l.Error("request failed", zap.Error(err))
		}
		l.Info("request completed",
			zap.Int("status", status),
			zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
		)

		return err
	}
}
