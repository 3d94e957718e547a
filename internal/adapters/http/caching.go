package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets a default Cache-Control on GET responses that the
// handler left without one.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || len(c.Response().Header.Peek(fiber.HeaderCacheControl)) > 0 {
			return err
		}
		if c.Response().StatusCode() >= 400 {
			c.Set(fiber.HeaderCacheControl, "no-store")
			return err
		}

		if ttl := cacheControlFor(c.Path()); ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}
		return err
	}
}

func cacheControlFor(path string) string {
	switch {
	case path == "/v1/health" || path == "/v1/ready":
		return "public, max-age=10"
	case path == "/metrics":
		return "no-cache"
	case strings.HasPrefix(path, "/v1/campuses/nearby"):
		return "public, max-age=300"
	case strings.HasPrefix(path, "/v1/campuses"),
		path == "/v1/radius-options",
		path == "/v1/theme":
		return "public, max-age=3600"
	case strings.HasPrefix(path, "/v1/postcodes/"):
		return "public, max-age=86400"
	case strings.HasPrefix(path, "/v1/eligibility"):
		return "private, max-age=60"
	case strings.HasPrefix(path, "/v1/"):
		return "public, max-age=300"
	}
	return ""
}
