package payment

import (
	"context"
	"errors"
)

// 決済プロセッサーに渡す請求先情報。
// 空のオプション項目（state・postal_code）は送らずに省略する。
type BillingDetails struct {
	Name    string         `json:"name"`
	Email   string         `json:"email,omitempty"`
	Phone   string         `json:"phone,omitempty"`
	Address BillingAddress `json:"address"`
}

type BillingAddress struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"` // ISO 3166-1 alpha-2
}

// 決済確定の結果
type Confirmation struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

const StatusSucceeded = "succeeded"

// プロセッサーが拒否したときのエラー。メッセージはそのままユーザーへ出す。
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

func AsDeclined(err error) (*DeclinedError, bool) {
	var de *DeclinedError
	ok := errors.As(err, &de)
	return de, ok
}

// 決済プロセッサーのクライアント面。
// methodはブラウザ側SDKがトークナイズした支払い手段の参照。
type Processor interface {
	Ready() bool
	Confirm(ctx context.Context, clientSecret string, method string, billing BillingDetails) (Confirmation, error)
}
