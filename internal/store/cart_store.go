package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// カートの状態コンテナ。
// 全ミューテーションは同期的にKVへスナップショットを書き戻す。
// 明細は追加順を保ち、同一product_idは1件まで。
type CartStore struct {
	mu    sync.Mutex
	kv    repo.KVStore
	key   string
	log   logrus.FieldLogger
	items []model.CartItem
}

// NewCartStore はKVから復元して返す。
// スナップショットが無い・読めない場合は空カートで開始する（起動を止めない）。
func NewCartStore(ctx context.Context, kv repo.KVStore, key string, log logrus.FieldLogger) *CartStore {
	s := &CartStore{
		kv:    kv,
		key:   key,
		log:   log,
		items: []model.CartItem{},
	}

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return s
	}
	if err != nil {
		log.WithError(err).Warn("cart rehydration failed, starting empty")
		return s
	}

	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.WithError(err).Warn("cart snapshot unparsable, starting empty")
		return s
	}

	s.items = items
	return s
}

// AddItem は商品をカートに追加する。同一商品は数量加算。
func (s *CartStore) AddItem(ctx context.Context, p model.Product, quantity int64) error {
	if quantity < 1 {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			return s.persist(ctx)
		}
	}

	//新規は表示項目のスナップショットを持って末尾に追加
	s.items = append(s.items, model.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Quantity:  quantity,
	})
	return s.persist(ctx)
}

// RemoveItem は該当明細を削除する。無ければno-op。
func (s *CartStore) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, productID)
}

// UpdateQuantity は数量を設定する。0以下は削除と同じ。対象が無ければno-op。
func (s *CartStore) UpdateQuantity(ctx context.Context, productID int64, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID)
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear はカートを空にして、永続スナップショット自体を削除する。
// （空リストを書くのではなくキーを消す）
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CartItem{}
	return s.kv.Remove(ctx, s.key)
}

// Items は明細のコピーを返す（追加順）。
func (s *CartStore) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalQuantity は数量の合計。
func (s *CartStore) TotalQuantity() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice は 単価×数量 の合計。毎回計算し直す。
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *CartStore) removeLocked(ctx context.Context, productID int64) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// 現在の明細をまるごと書き戻す（部分書き込みしない）
func (s *CartStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}
