package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger - middleware логирования запросов через zap
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Debug("HTTP request", fields...)
		}
		return err
	}
}
