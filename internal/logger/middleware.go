package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Middleware logs one line per request with the request-scoped logger
// (set by the request-id middleware) and passes that logger down through
// the request context.
func Middleware(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			l, ok := c.Get(EchoKey).(*zap.Logger)
			if !ok {
				l = base
				c.Set(EchoKey, l)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithContext(req.Context(), l)))

			err := next(c)
			if err != nil {
				// let the error handler write the status before logging it
				c.Error(err)
			}

			l.Info("http request",
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return nil
		}
	}
}
