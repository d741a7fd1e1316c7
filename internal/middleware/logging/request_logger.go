package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
)

// RequestLogger puts a request-scoped logger into the context and writes one
// "request completed" line per request. The line is written with the logger the
// context holds after the handler chain ran, so attributes added downstream,
// such as user_id from the auth step, are included.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With("method", req.Method, "route", c.Path(), "remote_ip", c.RealIP())
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}
			switch {
			case status >= 500 && err != nil:
				attrs = append(attrs, "error", err.Error())
			case status < 400:
				attrs = append(attrs, "bytes", c.Response().Size)
			}

			ctx := c.Request().Context()
			logging.FromContext(ctx).Log(ctx, levelFor(status), "request completed", attrs...)
			return nil
		}
	}
}

// requestID prefers the id set by the RequestID middleware and echoes a
// client-supplied one otherwise.
func requestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	rid := c.Request().Header.Get(echo.HeaderXRequestID)
	if rid != "" {
		c.Response().Header().Set(echo.HeaderXRequestID, rid)
	}
	return rid
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
