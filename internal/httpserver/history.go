package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type HistoryHTTP struct {
	Svc *service.HistoryService
}

func (h *HistoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "requests.history")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "requests_history", err)
	}

	entries, err := h.Svc.List(ctx, user.ID)
	if err != nil {
		return fail(c, l, "requests_history", err)
	}
	return c.JSON(http.StatusOK, transport.RequestHistory(entries))
}

func (h *HistoryHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "requests.history.clear")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "clear_requests_history", err)
	}

	if err := h.Svc.Clear(ctx, user.ID); err != nil {
		return fail(c, l, "clear_requests_history", err)
	}

	l.Info("request history cleared")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "История запросов очищена"})
}
