package etag

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// VersionSource returns the current version counter value for a route group.
type VersionSource func(c *fiber.Ctx) (int64, error)

// New returns a conditional-request middleware. The ETag is the quoted
// version counter value; a matching If-None-Match short-circuits with 304
// before the handler runs.
func New(source VersionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := source(c)
		if err != nil {
			// The version store is the same database the handler needs;
			// let the handler surface the failure.
			return c.Next()
		}

		tag := fmt.Sprintf("%q", fmt.Sprintf("%d", v))

		if match := strings.TrimSpace(c.Get(fiber.HeaderIfNoneMatch)); match != "" && match == tag {
			c.Set(fiber.HeaderETag, tag)
			return c.SendStatus(fiber.StatusNotModified)
		}

		err = c.Next()
		c.Set(fiber.HeaderETag, tag)
		return err
	}
}
