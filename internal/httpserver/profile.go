package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) Personal(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "personal")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "personal", err)
	}
	return c.JSON(http.StatusOK, transport.Personal(user))
}

type profileUpdate func(ctx context.Context, userID uint, value string) error

// update builds a handler that writes one profile field taken from the query parameter param.
func (h *ProfileHTTP) update(op, param, okMsg string, fn profileUpdate) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", op)

		user, err := currentUser(c)
		if err != nil {
			return fail(c, l, op, err)
		}

		if err := fn(ctx, user.ID, c.QueryParam(param)); err != nil {
			return fail(c, l, op, err)
		}

		l.Info("profile updated", "field", param)
		return c.JSON(http.StatusOK, transport.MessageResponse{Message: okMsg})
	}
}

func (h *ProfileHTTP) ChangeUsername() echo.HandlerFunc {
	return h.update("change_username", "newUsername", "Имя пользователя обновлено", h.Svc.ChangeUsername)
}

func (h *ProfileHTTP) ChangeEmail() echo.HandlerFunc {
	return h.update("change_email", "newEmail", "Email обновлён", h.Svc.ChangeEmail)
}

func (h *ProfileHTTP) ChangeAvatar() echo.HandlerFunc {
	return h.update("change_avatar", "newAvatarUrl", "Аватар обновлён", h.Svc.ChangeAvatar)
}

func (h *ProfileHTTP) ChooseAddress() echo.HandlerFunc {
	return h.update("choose_address", "newAddress", "Адрес доставки обновлён", h.Svc.ChooseAddress)
}

func (h *ProfileHTTP) ChoosePayment() echo.HandlerFunc {
	return h.update("choose_payment", "paymentMethod", "Способ оплаты обновлён", h.Svc.ChoosePayment)
}
