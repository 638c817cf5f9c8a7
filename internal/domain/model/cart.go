package model

import "github.com/shopspring/decimal"

// カートの明細
// 追加時点の商品表示情報（名前・画像・価格）を必ずスナップショットで保持。
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// 小計 = 単価 × 数量
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
