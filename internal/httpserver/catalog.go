package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products")

	products, err := h.Svc.List(ctx)
	if err != nil {
		return fail(c, l, "list_products", err)
	}
	return c.JSON(http.StatusOK, transport.Products(products))
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	products, err := h.Svc.Search(ctx, c.QueryParam("query"))
	if err != nil {
		return fail(c, l, "search", err)
	}
	return c.JSON(http.StatusOK, transport.Products(products))
}

func (h *CatalogHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.product")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "add_product", err)
	}
	price, err := queryDecimal(c, "price")
	if err != nil {
		return fail(c, l, "add_product", err)
	}

	p, err := h.Svc.Add(ctx, user.ID, c.QueryParam("name"), price, queryOptional(c, "imageUrl"))
	if err != nil {
		return fail(c, l, "add_product", err)
	}

	l.Info("product added", "product_id", p.ID)
	return c.JSON(http.StatusOK, transport.ProductAddedResponse{
		Message: fmt.Sprintf("Товар '%s' добавлен. ID = %d", p.Name, p.ID),
		Product: transport.Product(*p),
	})
}
