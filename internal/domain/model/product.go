package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}
