package usecase

import (
	"context"
	"net/http"

	"storefront/internal/backend"
	"storefront/internal/domain/model"
	"storefront/internal/store"
)

// 注文履歴が使うバックエンド操作
type OrderBackend interface {
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	GetOrder(ctx context.Context, token string, orderID int64) (model.Order, error)
}

type OrderUsecase struct {
	backend OrderBackend
}

// DI
func NewOrderUsecase(b OrderBackend) *OrderUsecase {
	return &OrderUsecase{backend: b}
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, auth *store.AuthStore) ([]model.Order, error) {
	if !auth.IsAuthenticated() {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.backend.ListOrders(ctx, auth.Token())
	if err != nil {
		return nil, u.authError(ctx, auth, err)
	}
	return orders, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, auth *store.AuthStore, orderID int64) (model.Order, error) {
	if !auth.IsAuthenticated() {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.backend.GetOrder(ctx, auth.Token(), orderID)
	if err != nil {
		return model.Order{}, u.authError(ctx, auth, err)
	}
	return o, nil
}

// 401が返ってきたらローカルセッションも破棄する
func (u *OrderUsecase) authError(ctx context.Context, auth *store.AuthStore, err error) error {
	if backend.IsKind(err, backend.KindUnauthorized) {
		_ = auth.Logout(ctx)
	}
	return fromBackend(err)
}
