package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.wishlist")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "get_wishlist", err)
	}

	products, err := h.Svc.Wishlist(ctx, user.ID)
	if err != nil {
		return fail(c, l, "get_wishlist", err)
	}
	return c.JSON(http.StatusOK, transport.Wishlist(products))
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.wishlist")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "add_to_wishlist", err)
	}
	productID, err := queryUint(c, "productId")
	if err != nil {
		return fail(c, l, "add_to_wishlist", err)
	}

	product, err := h.Svc.Add(ctx, user.ID, productID)
	if err != nil {
		return fail(c, l, "add_to_wishlist", err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Товар '%s' добавлен в Желаемое", product.Name),
	})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.wishlist")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "remove_from_wishlist", err)
	}
	productID, err := queryUint(c, "productId")
	if err != nil {
		return fail(c, l, "remove_from_wishlist", err)
	}

	if err := h.Svc.Remove(ctx, user.ID, productID); err != nil {
		return fail(c, l, "remove_from_wishlist", err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Товар (ID=%d) удалён из Желаемого", productID),
	})
}
