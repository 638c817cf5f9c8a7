package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/store"
)

// 管理画面（注文ステータス・お問い合わせ）が使うバックエンド操作
type AdminBackend interface {
	GetOrder(ctx context.Context, token string, orderID int64) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int64, status model.OrderStatus) (model.Order, error)
	ListContactMessages(ctx context.Context, token string) ([]model.ContactMessage, error)
	CloseContactMessage(ctx context.Context, token string, messageID int64) (model.ContactMessage, error)
}

type AdminUsecase struct {
	backend AdminBackend
}

// DI
func NewAdminUsecase(b AdminBackend) *AdminUsecase {
	return &AdminUsecase{backend: b}
}

// UpdateOrderStatus は遷移の妥当性を手元で確認してからバックエンドへ送る。
func (u *AdminUsecase) UpdateOrderStatus(ctx context.Context, auth *store.AuthStore, orderID int64, status string) (model.Order, error) {
	if err := requireAdmin(auth); err != nil {
		return model.Order{}, err
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	next := model.OrderStatus(status)
	switch next {
	case model.OrderStatusPaid, model.OrderStatusShipped, model.OrderStatusCanceled:
	default:
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	current, err := u.backend.GetOrder(ctx, auth.Token(), orderID)
	if err != nil {
		return model.Order{}, fromBackend(err)
	}
	if !model.CanTransitionOrder(current.Status, next) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid transition")
	}

	updated, err := u.backend.UpdateOrderStatus(ctx, auth.Token(), orderID, next)
	if err != nil {
		return model.Order{}, fromBackend(err)
	}
	return updated, nil
}

func (u *AdminUsecase) ListMessages(ctx context.Context, auth *store.AuthStore) ([]model.ContactMessage, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	msgs, err := u.backend.ListContactMessages(ctx, auth.Token())
	if err != nil {
		return nil, fromBackend(err)
	}
	return msgs, nil
}

func (u *AdminUsecase) CloseMessage(ctx context.Context, auth *store.AuthStore, messageID int64) (model.ContactMessage, error) {
	if err := requireAdmin(auth); err != nil {
		return model.ContactMessage{}, err
	}
	if messageID <= 0 {
		return model.ContactMessage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	msg, err := u.backend.CloseContactMessage(ctx, auth.Token(), messageID)
	if err != nil {
		return model.ContactMessage{}, fromBackend(err)
	}
	return msg, nil
}

// ADMINロールを持つ認証済みセッションだけを通す
func requireAdmin(auth *store.AuthStore) error {
	user, ok := auth.User()
	if !ok {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !user.HasRole(model.RoleAdmin) {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	return nil
}
