package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/backend"
	"storefront/internal/domain/model"
	"storefront/internal/validator"
)

// お問い合わせが使うバックエンド操作
type ContactBackend interface {
	SubmitContact(ctx context.Context, req backend.ContactRequest) (model.ContactMessage, error)
}

type ContactUsecase struct {
	backend ContactBackend
}

// DI
func NewContactUsecase(b ContactBackend) *ContactUsecase {
	return &ContactUsecase{backend: b}
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) (model.ContactMessage, error) {
	//項目チェックはローカルで先に行う
	if fields := validator.ValidateContact(in.Name, in.Email, in.Message); len(fields) > 0 {
		return model.ContactMessage{}, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "invalid fields",
			Fields:  fields,
		}
	}

	msg, err := u.backend.SubmitContact(ctx, backend.ContactRequest{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	})
	if err != nil {
		return model.ContactMessage{}, fromBackend(err)
	}
	return msg, nil
}
