package model

import "github.com/shopspring/decimal"

// 注文明細（カートをフラット化したもの）
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}
