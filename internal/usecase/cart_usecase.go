package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/store"

	"github.com/shopspring/decimal"
)

// カート追加時に商品スナップショットを引くためのカタログ面
type ProductSource interface {
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
}

// CartUsecase は /cart の業務ロジック。
// 状態そのものはセッションごとの CartStore が持つ。
type CartUsecase struct {
	products ProductSource
}

// DI
func NewCartUsecase(products ProductSource) *CartUsecase {
	return &CartUsecase{products: products}
}

type CartResponse struct {
	Items         []model.CartItem `json:"items"`
	TotalQuantity int64            `json:"total_quantity"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, cart *store.CartStore) (CartResponse, error) {
	return buildCartResponse(cart), nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 在庫チェックはしない。注文確定時にバックエンドが弾く。
func (u *CartUsecase) AddToCart(ctx context.Context, cart *store.CartStore, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//表示項目のスナップショット用に商品を取得
	p, err := u.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		return CartResponse{}, fromBackend(err)
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	if err := cart.AddItem(ctx, p, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	return buildCartResponse(cart), nil
}

// 数量変更。0以下は削除扱い。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, cart *store.CartStore, productID int64, quantity int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := cart.UpdateQuantity(ctx, productID, quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return buildCartResponse(cart), nil
}

// 明細削除。無くてもエラーにしない。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, cart *store.CartStore, productID int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := cart.RemoveItem(ctx, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return buildCartResponse(cart), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, cart *store.CartStore) (CartResponse, error) {
	if err := cart.Clear(ctx); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return buildCartResponse(cart), nil
}

func buildCartResponse(cart *store.CartStore) CartResponse {
	return CartResponse{
		Items:         cart.Items(),
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    cart.TotalPrice(),
	}
}
