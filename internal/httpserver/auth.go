package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "register")

	user, err := h.Svc.Register(ctx, c.QueryParam("username"), c.QueryParam("password"), c.QueryParam("email"))
	if err != nil {
		return fail(c, l, "register", err)
	}

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.TokenResponse{
		Message: "Пользователь успешно зарегистрирован",
		Token:   user.Token,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	tok, err := h.Svc.Login(ctx, c.QueryParam("username"), c.QueryParam("password"))
	if err != nil {
		return fail(c, l, "login", err)
	}

	l.Info("user logged in")
	return c.JSON(http.StatusOK, transport.TokenResponse{Message: "Успешный вход", Token: tok})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "change.password")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "change_password", err)
	}

	tok, err := h.Svc.ChangePassword(ctx, user.ID, c.QueryParam("newPassword"))
	if err != nil {
		return fail(c, l, "change_password", err)
	}

	l.Info("password changed")
	return c.JSON(http.StatusOK, transport.NewTokenResponse{Message: "Пароль изменён", NewToken: tok})
}
