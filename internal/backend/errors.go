package backend

import (
	"errors"
	"fmt"
)

// バックエンド／外部呼び出しのエラー種別（閉じた集合）。
// 生のHTTPレスポンスはこの境界で変換し、下流では種別だけを見る。
type Kind string

const (
	KindValidation   Kind = "validation"   // 400 項目エラー
	KindUnauthorized Kind = "unauthorized" // 401
	KindForbidden    Kind = "forbidden"    // 403
	KindNotFound     Kind = "not_found"    // 404
	KindServer       Kind = "server"       // 5xxなど
	KindNetwork      Kind = "network"      // 接続できない・タイムアウト
)

type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string // 400の項目別メッセージ
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsKind(err error, k Kind) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Kind == k
}

// ステータスコード→種別
func kindForStatus(status int) Kind {
	switch status {
	case 400:
		return KindValidation
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	default:
		return KindServer
	}
}
