package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
)

// Limiter per-key request budget; *ratelimit.Limiter satisfies it.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}

// RateLimit rejects a client IP that exhausted its budget with 429.
// Limiter errors are logged and the request passes.
func RateLimit(l Limiter, log zerolog.Logger, reject func(c *fiber.Ctx) error) fiber.Handler {
	if reject == nil {
		reject = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "too many requests, try again in a minute"})
		}
	}
	return func(c *fiber.Ctx) error {
		if l == nil {
			return c.Next()
		}
		ok, err := l.Allow(c.Context(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("rate limiter unavailable")
		}
		if !ok {
			return reject(c)
		}
		return c.Next()
	}
}
