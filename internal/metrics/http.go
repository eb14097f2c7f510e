package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware records request count and latency labelled by route pattern.
func Middleware(service string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			method := c.Request().Method
			path := c.Path()
			RequestCounter.WithLabelValues(service, method, path, strconv.Itoa(c.Response().Status)).Inc()
			RequestDuration.WithLabelValues(service, method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
