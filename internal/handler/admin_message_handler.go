package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理画面のお問い合わせ操作
type AdminMessageHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminMessageHandler(uc *usecase.AdminUsecase) *AdminMessageHandler {
	return &AdminMessageHandler{uc: uc}
}

func (h *AdminMessageHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin/messages")
	g.Use(middleware.AuthGuard())
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("/:id/close", h.close)
}

func (h *AdminMessageHandler) list(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	out, err := h.uc.ListMessages(c.Request().Context(), sess.Auth)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out})
}

func (h *AdminMessageHandler) close(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.CloseMessage(c.Request().Context(), sess.Auth, messageID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
