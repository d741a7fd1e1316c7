package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "checkout", err)
	}

	res, err := h.Svc.Checkout(ctx, user.ID, queryOptional(c, "comment"))
	if err != nil {
		return fail(c, l, "checkout", err)
	}

	l.Info("order placed", "order_id", res.Order.ID, "total_price", res.Order.TotalPrice.String())
	return c.JSON(http.StatusOK, transport.OrderPlacedResponse{
		Message:      "Заказ успешно создан",
		OrderID:      res.Order.ID,
		TotalPrice:   transport.M(res.Order.TotalPrice),
		OrderComment: res.Order.Comment,
	})
}

func (h *OrderHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.history")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "order_history", err)
	}

	orders, err := h.Svc.History(ctx, user.ID)
	if err != nil {
		return fail(c, l, "order_history", err)
	}
	return c.JSON(http.StatusOK, transport.Orders(orders))
}
