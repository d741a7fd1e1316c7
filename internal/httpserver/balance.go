package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type BalanceHTTP struct {
	Svc *service.BalanceService
}

func (h *BalanceHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "balance")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "balance", err)
	}

	balance, err := h.Svc.Balance(ctx, user.ID)
	if err != nil {
		return fail(c, l, "balance", err)
	}
	return c.JSON(http.StatusOK, transport.BalanceResponse{
		Message: fmt.Sprintf("Ваш текущий баланс: %s", balance.String()),
		Balance: transport.M(balance),
	})
}

func (h *BalanceHTTP) TopUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "balance.add")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "top_up", err)
	}
	amount, err := queryDecimal(c, "amount")
	if err != nil {
		return fail(c, l, "top_up", err)
	}

	balance, err := h.Svc.TopUp(ctx, user.ID, amount)
	if err != nil {
		return fail(c, l, "top_up", err)
	}

	l.Info("balance topped up", "amount", amount.String())
	return c.JSON(http.StatusOK, transport.BalanceResponse{
		Message: fmt.Sprintf("Баланс пополнен. Текущий баланс: %s", balance.String()),
		Balance: transport.M(balance),
	})
}
