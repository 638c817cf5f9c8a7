package session

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
	"storefront/internal/store"

	"github.com/sirupsen/logrus"
)

// ブラウザセッション1つ分の状態。
// カートとセッションは同じKVにセッションIDスコープのキーで永続化される。
type Session struct {
	ID   string
	Cart *store.CartStore
	Auth *store.AuthStore
}

// Manager はセッションIDごとのストアのペアを遅延生成してキャッシュする。
type Manager struct {
	mu       sync.Mutex
	kv       repo.KVStore
	log      logrus.FieldLogger
	sessions map[string]*Session
}

func NewManager(kv repo.KVStore, log logrus.FieldLogger) *Manager {
	return &Manager{
		kv:       kv,
		log:      log,
		sessions: map[string]*Session{},
	}
}

// Get は該当セッションを返す。初回はKVから復元して作る。
func (m *Manager) Get(ctx context.Context, sid string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sid]; ok {
		return s
	}

	log := m.log.WithField("session_id", sid)
	s := &Session{
		ID:   sid,
		Cart: store.NewCartStore(ctx, m.kv, "cart:"+sid, log),
		Auth: store.NewAuthStore(ctx, m.kv, "auth:"+sid, log),
	}

	m.sessions[sid] = s
	return s
}
