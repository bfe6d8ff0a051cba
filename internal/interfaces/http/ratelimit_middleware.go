package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// RateLimit consume un token por IP. Un error del limitador deja pasar la petición.
// limiter nil desactiva el middleware.
func RateLimit(limiter ratelimit.Limiter, log *logger.Logger) fiber.Handler {
	if limiter == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		res, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("rate limit no disponible, se permite la petición")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Set(fiber.HeaderRetryAfter, ratelimit.FormatSeconds(res.RetryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: CodeRateLimited, Message: "Too many requests",
			})
		}
		return c.Next()
	}
}
