package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/token"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

const userKey = "current_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireUser resolves the bearer token to a user and rejects the request with 401 otherwise.
func RequireUser(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx)

			tok := token.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			user, err := a.Authenticate(ctx, tok)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					l.Warn("auth_failed", "status", 401, "reason", "unknown or missing token")
					return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
				}
				l.Error("auth_error", "status", 500, "error", err)
				return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
			}

			c.Set(userKey, user)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l.With("user_id", user.ID))))
			return next(c)
		}
	}
}

// User returns the user resolved by RequireUser.
func User(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(userKey).(*models.User)
	return u, ok && u != nil
}

// SetUser is used by tests that call handlers without the middleware.
func SetUser(c echo.Context, u *models.User) {
	c.Set(userKey, u)
}
