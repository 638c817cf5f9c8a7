package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// UpdateUser の部分更新。nilの項目は触らない。
// Address はネストをマージせず丸ごと差し替える。
type UserUpdate struct {
	Name         *string
	Email        *string
	MobileNumber *string
	Address      *model.Address
}

// セッションの状態コンテナ。tokenとuserは常にペアで永続化する。
type AuthStore struct {
	mu      sync.Mutex
	kv      repo.KVStore
	key     string
	log     logrus.FieldLogger
	session model.Session
}

// NewAuthStore はKVから復元して返す。
// カートと違い、読めない・欠けている・期限切れは未認証に倒す（fail closed）。
func NewAuthStore(ctx context.Context, kv repo.KVStore, key string, log logrus.FieldLogger) *AuthStore {
	s := &AuthStore{kv: kv, key: key, log: log}

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return s
	}
	if err != nil {
		log.WithError(err).Warn("session rehydration failed, starting logged out")
		return s
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		log.WithError(err).Warn("session snapshot unparsable, starting logged out")
		return s
	}
	if !sess.IsAuthenticated() {
		return s
	}
	if tokenExpired(sess.Token) {
		log.Info("persisted access token expired, starting logged out")
		return s
	}

	s.session = sess
	return s
}

// LoginSuccess はtokenとuserをまとめて設定・永続化する。
func (s *AuthStore) LoginSuccess(ctx context.Context, token string, user model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.session = model.Session{Token: token, User: &u}
	return s.persist(ctx)
}

// Logout はセッションを破棄して永続化も消す。
func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{}
	return s.kv.Remove(ctx, s.key)
}

// UpdateUser は指定された項目だけをマージして再永続化する。未認証ならno-op。
func (s *AuthStore) UpdateUser(ctx context.Context, in UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated() {
		return nil
	}

	if in.Name != nil {
		s.session.User.Name = *in.Name
	}
	if in.Email != nil {
		s.session.User.Email = *in.Email
	}
	if in.MobileNumber != nil {
		s.session.User.MobileNumber = *in.MobileNumber
	}
	if in.Address != nil {
		a := *in.Address
		s.session.User.Address = &a
	}

	return s.persist(ctx)
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsAuthenticated()
}

func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// User は現在のユーザーのコピーを返す。未認証なら false。
func (s *AuthStore) User() (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated() {
		return model.UserProfile{}, false
	}
	return *s.session.User, true
}

func (s *AuthStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.session)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}

// tokenがJWTでexpが過去なら期限切れ。
// JWTとして読めないtoken（不透明token）は有効扱い（バックエンドの401に任せる）。
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return false
	}

	//expが無いtokenは有効扱い
	return !claims.VerifyExpiresAt(time.Now().Unix(), false)
}
