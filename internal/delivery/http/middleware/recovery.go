package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery - перехват паники в обработчике; стек пишется в zap, ответ 500
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Panic in HTTP handler",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
				zap.Stack("stack"))
		},
	})
}
