package server

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Profile      *handler.ProfileHandler
	Contact      *handler.ContactHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminMessage *handler.AdminMessageHandler
}

func RegisterRoutes(e *echo.Echo, mgr *session.Manager, h Handlers) {
	//全ルートでセッションを持たせる
	e.Use(middleware.EnsureSession(mgr))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Profile.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e)
	h.AdminMessage.RegisterRoutes(e)
}
