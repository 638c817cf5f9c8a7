package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 認証済みセッションだけを通す
func AuthGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := FromContext(c)
			if !ok || !sess.Auth.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}
