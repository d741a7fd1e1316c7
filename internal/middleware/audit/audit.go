package audit

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/middleware/auth"
)

type Recorder interface {
	Record(ctx context.Context, userID uint, endpoint string) error
}

// Endpoint is the label stored for a request, e.g. "POST /cart/add".
func Endpoint(c echo.Context) string {
	return c.Request().Method + " " + strings.TrimPrefix(c.Path(), "/api")
}

// Record appends a request history entry once an authenticated handler succeeds.
func Record(r Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}

			status := c.Response().Status
			if status < 200 || status >= 300 {
				return nil
			}
			user, ok := auth.User(c)
			if !ok {
				return nil
			}

			ctx := c.Request().Context()
			if err := r.Record(ctx, user.ID, Endpoint(c)); err != nil {
				logging.FromContext(ctx).Error("request_history_append_failed", "endpoint", Endpoint(c), "error", err)
			}
			return nil
		}
	}
}
