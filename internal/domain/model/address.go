package model

import "strings"

// 配送先・請求先住所
type Address struct {
	//番地など
	Street string `json:"street"`

	//市区町村
	City string `json:"city"`

	//都道府県・州
	State string `json:"state"`

	//郵便番号
	PostalCode string `json:"postal_code"`

	//国名
	Country string `json:"country"`
}

// 5項目すべて入っていれば「完全」とみなす（空白だけは未入力扱い）
func (a Address) IsComplete() bool {
	for _, v := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
