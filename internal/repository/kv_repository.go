package repository

import (
	"context"
	"errors"
)

// キーが存在しない
var ErrNotFound = errors.New("not found")

// ローカル永続ストアの抽象。カートとセッションのスナップショット置き場。
// 実装は internal/infra/kv（メモリ／ファイル／Postgres）。
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
