package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// Logging writes one access log line per request. Handler errors are passed
// to echo's error handler first so the logged status is the one the client
// received. Server errors are logged at error level.
func Logging(log *logger.Logger, skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip[c.Request().URL.Path] {
				return next(c)
			}

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []interface{}{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", res.Status,
				"bytes_out", res.Size,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", c.RealIP(),
			}

			if res.Status >= http.StatusInternalServerError {
				if err != nil {
					fields = append(fields, "error", err)
				}
				log.Error(req.Context(), "HTTP request failed", fields...)
			} else {
				log.Info(req.Context(), "HTTP request", fields...)
			}

			return nil
		}
	}
}
