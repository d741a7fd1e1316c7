package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/nutshop/internal/middleware/auth"
	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

var errNoUser = &service.Error{Kind: service.ErrUnauthorized, Msg: "unauthorized"}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": msg}; errors outside the service taxonomy become a 500.
func fail(c echo.Context, l *slog.Logger, op string, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
		return c.JSON(status, transport.ErrorResponse{Error: "internal error"})
	}

	msg := service.Message(err)
	l.Warn(op+"_failed", "status", status, "reason", msg)
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

func currentUser(c echo.Context) (*models.User, error) {
	u, ok := auth.User(c)
	if !ok {
		return nil, errNoUser
	}
	return u, nil
}

func badParam(name string) error {
	return &service.Error{Kind: service.ErrValidation, Msg: fmt.Sprintf("Некорректный параметр %s", name)}
}

func queryUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam(name)), 10, 0)
	if err != nil {
		return 0, badParam(name)
	}
	return uint(v), nil
}

func queryInt(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0, badParam(name)
	}
	return v, nil
}

func queryDecimal(c echo.Context, name string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return decimal.Zero, badParam(name)
	}
	return v, nil
}

// queryOptional returns nil when the parameter is absent.
func queryOptional(c echo.Context, name string) *string {
	if !c.QueryParams().Has(name) {
		return nil
	}
	v := c.QueryParam(name)
	return &v
}

// errorHandler keeps framework errors in the same {"error": msg} shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.ErrorResponse{Error: msg})
}
