package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/backend"
)

type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// バックエンドのAPIErrorをユーザー向けの固定メッセージに変換する。
// 400だけは項目別メッセージをそのまま通す。
func fromBackend(err error) error {
	ae, ok := backend.AsAPIError(err)
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	switch ae.Kind {
	case backend.KindValidation:
		return &HTTPError{Status: http.StatusBadRequest, Message: ae.Message, Fields: ae.Fields}
	case backend.KindUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case backend.KindForbidden:
		return NewHTTPError(http.StatusForbidden, "forbidden")
	case backend.KindNotFound:
		return NewHTTPError(http.StatusNotFound, "not found")
	case backend.KindNetwork:
		return NewHTTPError(http.StatusServiceUnavailable, "connection error")
	default:
		return NewHTTPError(http.StatusBadGateway, "backend error")
	}
}
