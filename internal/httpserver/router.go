package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/db"
	"github.com/Skotchmaster/nutshop/internal/metrics"
	"github.com/Skotchmaster/nutshop/internal/middleware/audit"
	"github.com/Skotchmaster/nutshop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/nutshop/internal/middleware/logging"
	"github.com/Skotchmaster/nutshop/internal/transport"
)

type Deps struct {
	DB      *gorm.DB
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Authenticator auth.Authenticator
	Recorder      audit.Recorder

	Auth     *AuthHTTP
	Profile  *ProfileHTTP
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Wishlist *WishlistHTTP
	Orders   *OrderHTTP
	Balance  *BalanceHTTP
	History  *HistoryHTTP
}

// New builds the echo instance with the shared middleware chain and every route.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	if d.Logger != nil {
		e.Use(loggingmw.RequestLogger(d.Logger))
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return c.JSON(http.StatusServiceUnavailable, transport.ErrorResponse{Error: "database unavailable"})
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	public := e.Group("/api")
	public.POST("/register", d.Auth.Register)
	public.POST("/login", d.Auth.Login)
	public.GET("/products", d.Catalog.List)
	public.GET("/search", d.Catalog.Search)

	api := e.Group("/api", auth.RequireUser(d.Authenticator), audit.Record(d.Recorder))

	api.GET("/personal", d.Profile.Personal)
	api.PATCH("/change_username", d.Profile.ChangeUsername())
	api.PATCH("/change_email", d.Profile.ChangeEmail())
	api.PATCH("/change_password", d.Auth.ChangePassword)
	api.PATCH("/change_avatar", d.Profile.ChangeAvatar())
	api.PATCH("/choose_address", d.Profile.ChooseAddress())
	api.PATCH("/choose_payment", d.Profile.ChoosePayment())

	api.POST("/products/add", d.Catalog.Add)

	api.GET("/cart", d.Cart.GetCart)
	api.POST("/cart/add", d.Cart.AddToCart)
	api.POST("/cart/remove", d.Cart.RemoveFromCart)
	api.POST("/cart/clear", d.Cart.ClearCart)
	api.POST("/cart/updateQuantity", d.Cart.UpdateQuantity)

	api.GET("/wishlist", d.Wishlist.GetWishlist)
	api.POST("/wishlist/add", d.Wishlist.Add)
	api.POST("/wishlist/remove", d.Wishlist.Remove)

	api.POST("/order", d.Orders.Checkout)
	api.GET("/orders/history", d.Orders.History)

	api.GET("/requests_history", d.History.List)
	api.DELETE("/requests_history", d.History.Clear)

	api.GET("/balance", d.Balance.Get)
	api.POST("/balance/add", d.Balance.TopUp)
}
