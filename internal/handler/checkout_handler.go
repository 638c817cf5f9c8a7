package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthGuard())

	g.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	result := h.uc.Run(c.Request().Context(), sess.Cart, sess.Auth, usecase.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
	})

	return c.JSON(statusForOutcome(result.Outcome), result)
}

// 終端結果→HTTPステータス
func statusForOutcome(o usecase.Outcome) int {
	switch o {
	case usecase.OutcomeSucceeded:
		return http.StatusOK
	case usecase.OutcomeNoSession:
		return http.StatusUnauthorized
	case usecase.OutcomeNotReady:
		return http.StatusServiceUnavailable
	case usecase.OutcomeEmptyCart, usecase.OutcomeInvalidFields, usecase.OutcomeCardElementMissing:
		return http.StatusBadRequest
	case usecase.OutcomePaymentDeclined, usecase.OutcomePaymentIncomplete:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadGateway
	}
}
