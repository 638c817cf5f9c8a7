package server

import (
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

func Start(addr string, mgr *session.Manager, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, mgr, h)
	return e.Start(addr)
}
