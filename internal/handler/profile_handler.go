package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /profileのHTTP
type ProfileHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewProfileHandler(uc *usecase.AuthUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type ProfileUpdateRequest struct {
	Name         *string        `json:"name,omitempty"`
	Email        *string        `json:"email,omitempty"`
	MobileNumber *string        `json:"mobile_number,omitempty"`
	Address      *model.Address `json:"address,omitempty"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/profile")
	g.Use(middleware.AuthGuard())

	g.GET("", h.get)
	g.PATCH("", h.update)
}

func (h *ProfileHandler) get(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	user, err := h.uc.Me(c.Request().Context(), sess.Auth)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) update(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), sess.Auth, usecase.ProfileUpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
