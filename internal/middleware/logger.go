package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"shopapi/internal/logging"
)

// RequestLogger stores a request scoped entry in the request context and
// logs every completed request. Errors returned by the chain are rendered
// here so the logged status is the one the client receives.
func RequestLogger(base *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			fields := logrus.Fields{
				"method":    req.Method,
				"path":      req.URL.Path,
				"remote_ip": c.RealIP(),
			}
			if rid != "" {
				fields["request_id"] = rid
			}
			entry := base.WithFields(fields)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), entry)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			// handlers may have enriched the entry, e.g. with the user id
			entry = logging.FromContext(c.Request().Context()).WithFields(logrus.Fields{
				"status":      c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
			})

			status := c.Response().Status
			switch {
			case status >= 500:
				if err != nil {
					entry = entry.WithError(err)
				}
				entry.Error("request completed")
			case status >= 400:
				entry.Warn("request completed")
			default:
				entry.WithField("bytes", c.Response().Size).Info("request completed")
			}
			return nil
		}
	}
}
