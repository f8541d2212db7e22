package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// RequestLogger registra cada petición como evento zerolog: método, ruta, estado y latencia.
// 5xx van a nivel error, 4xx a warn; los sondeos de /health y /metrics a debug.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		case c.Path() == "/health" || c.Path() == "/metrics":
			ev = log.Debug()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
