package middleware

import (
	"net/http"

	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// セッションIDクッキー
	CookieName = "storefront_session"

	// echoコンテキストに入れるキー
	CtxSessionKey = "session" // *session.Session
)

// EnsureSession は全リクエストにセッションを持たせる。
// クッキーが無ければ発行して、セッションのストアをコンテキストへ入れる。
func EnsureSession(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string

			cookie, err := c.Cookie(CookieName)
			if err == nil && cookie.Value != "" {
				sid = cookie.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := mgr.Get(c.Request().Context(), sid)
			c.Set(CtxSessionKey, sess)

			return next(c)
		}
	}
}

// FromContext はEnsureSessionが入れたセッションを取り出す。
func FromContext(c echo.Context) (*session.Session, bool) {
	sess, ok := c.Get(CtxSessionKey).(*session.Session)
	return sess, ok
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
