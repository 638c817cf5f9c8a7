package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 管理画面で許可するステータス遷移
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCanceled},
}

func CanTransitionOrder(from OrderStatus, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID            int64           `json:"id"`
	Status        OrderStatus     `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentID     string          `json:"payment_id"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items"`
}
