package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理画面の注文操作
type AdminOrderHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthGuard())
	g.Use(middleware.AdminRoleGuard())

	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), sess.Auth, orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
