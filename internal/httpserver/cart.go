package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/service"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "get_cart", err)
	}

	lines, err := h.Svc.Cart(ctx, user.ID)
	if err != nil {
		return fail(c, l, "get_cart", err)
	}
	return c.JSON(http.StatusOK, transport.Cart(lines))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "add_to_cart", err)
	}
	productID, err := queryUint(c, "productId")
	if err != nil {
		return fail(c, l, "add_to_cart", err)
	}
	quantity, err := queryInt(c, "quantity")
	if err != nil {
		return fail(c, l, "add_to_cart", err)
	}

	product, err := h.Svc.Add(ctx, user.ID, productID, quantity)
	if err != nil {
		return fail(c, l, "add_to_cart", err)
	}

	l.Info("item added to cart", "product_id", productID, "quantity", quantity)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Добавлено %d шт. товара '%s' в корзину", quantity, product.Name),
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.cart")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "remove_from_cart", err)
	}
	productID, err := queryUint(c, "productId")
	if err != nil {
		return fail(c, l, "remove_from_cart", err)
	}
	quantity, err := queryInt(c, "quantity")
	if err != nil {
		return fail(c, l, "remove_from_cart", err)
	}

	deleted, err := h.Svc.Remove(ctx, user.ID, productID, quantity)
	if err != nil {
		return fail(c, l, "remove_from_cart", err)
	}

	l.Info("item removed from cart", "product_id", productID, "line_deleted", deleted)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Удалено %d шт. товара '%d' из корзины", quantity, productID),
	})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "update_quantity", err)
	}
	productID, err := queryUint(c, "productId")
	if err != nil {
		return fail(c, l, "update_quantity", err)
	}
	quantity, err := queryInt(c, "newQuantity")
	if err != nil {
		return fail(c, l, "update_quantity", err)
	}

	if _, err := h.Svc.UpdateQuantity(ctx, user.ID, productID, quantity); err != nil {
		return fail(c, l, "update_quantity", err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Количество товара обновлено"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	user, err := currentUser(c)
	if err != nil {
		return fail(c, l, "clear_cart", err)
	}

	if err := h.Svc.Clear(ctx, user.ID); err != nil {
		return fail(c, l, "clear_cart", err)
	}

	l.Info("cart successfully cleared")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Корзина очищена"})
}
