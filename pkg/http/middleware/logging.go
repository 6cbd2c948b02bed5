package middleware

import (
	"time"

	applogger "EnergyOptimizer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging writes one structured line per request. Websocket upgrades
// are logged when the connection closes.
func RequestLogging(log *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("latency_ms", time.Since(start)),
			}
			if c.Response().Status >= 500 {
				log.Warn("http request", append(fields, applogger.Error(err))...)
			} else {
				log.Debug("http request", fields...)
			}

			// Already handled by c.Error above.
			return nil
		}
	}
}
