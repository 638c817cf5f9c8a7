package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /contactのHTTP
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

// DI
func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/contact", h.submit)
}

func (h *ContactHandler) submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	msg, err := h.uc.Submit(c.Request().Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}
