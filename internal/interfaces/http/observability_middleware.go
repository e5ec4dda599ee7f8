package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/infrastructure/metrics"
	"github.com/brickapp/brickapp-api/pkg/logger"
)

// MetricsMiddleware registra cantidad y duración de peticiones por ruta.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		done := metrics.RequestStarted()
		defer done()
		start := time.Now()
		err := c.Next()
		metrics.ObserveRequest(c.Method(), c.Route().Path, statusOf(c, err), time.Since(start))
		return err
	}
}

// RequestLogger una línea por petición con método, ruta, status, latencia, empresa y usuario.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", c.Route().Path).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("empresa_id", GetEmpresaID(c)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

// statusOf status final: si el handler devolvió error, aún no pasó por el ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
