package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// RequestLog tags each request with an id (from X-Request-ID or a fresh
// uuid), stores a logrus entry carrying it on the context and logs one
// line when the request finishes.  Errors are rendered here so the logged
// status is the one the client saw.
func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			entry := logrus.WithFields(logrus.Fields{
				"request_id": id,
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.Set(loggerKey, entry)

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := entry.WithFields(logrus.Fields{
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
				"bytes_out":  c.Response().Size,
			})
			switch {
			case status >= 500:
				fields.Error("request")
			case status >= 400:
				fields.Warn("request")
			default:
				fields.Info("request")
			}
			return nil
		}
	}
}

// Logger returns the request scoped entry set by RequestLog, or the standard
// logger when the middleware is not mounted.
func Logger(c echo.Context) *logrus.Entry {
	if e, ok := c.Get(loggerKey).(*logrus.Entry); ok {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
