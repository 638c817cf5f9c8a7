package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/backend"
	"storefront/internal/domain/model"
	"storefront/internal/store"

	"github.com/sirupsen/logrus"
)

// 認証まわりが使うバックエンド操作
type AuthBackend interface {
	Login(ctx context.Context, req backend.LoginRequest) (backend.LoginResponse, error)
	Register(ctx context.Context, req backend.RegisterRequest) (model.UserProfile, error)
	FetchProfile(ctx context.Context, token string) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, req backend.ProfileUpdateRequest) (model.UserProfile, error)
}

type AuthUsecase struct {
	backend AuthBackend
	log     logrus.FieldLogger
}

// DI
func NewAuthUsecase(b AuthBackend, log logrus.FieldLogger) *AuthUsecase {
	return &AuthUsecase{backend: b, log: log}
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name         string
	Email        string
	MobileNumber string
	Password     string
}

type ProfileUpdateInput struct {
	Name         *string
	Email        *string
	MobileNumber *string
	Address      *model.Address
}

// Login はバックエンドで認証し、成功したらセッションストアへ反映する。
func (u *AuthUsecase) Login(ctx context.Context, auth *store.AuthStore, in LoginInput) (model.UserProfile, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	resp, err := u.backend.Login(ctx, backend.LoginRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
	if err != nil {
		return model.UserProfile{}, fromBackend(err)
	}

	//tokenとuserはペアで保存
	if err := auth.LoginSuccess(ctx, resp.Token, resp.User); err != nil {
		u.log.WithError(err).Warn("session persist failed")
	}

	return resp.User, nil
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.UserProfile, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.backend.Register(ctx, backend.RegisterRequest{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		Password:     in.Password,
	})
	if err != nil {
		return model.UserProfile{}, fromBackend(err)
	}
	return user, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, auth *store.AuthStore) error {
	if err := auth.Logout(ctx); err != nil {
		u.log.WithError(err).Warn("session removal failed")
	}
	return nil
}

// Me は最新のプロフィールを取り直してストアへ反映する。
func (u *AuthUsecase) Me(ctx context.Context, auth *store.AuthStore) (model.UserProfile, error) {
	token := auth.Token()
	if !auth.IsAuthenticated() {
		return model.UserProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.backend.FetchProfile(ctx, token)
	if err != nil {
		return model.UserProfile{}, u.authError(ctx, auth, err)
	}

	if err := auth.LoginSuccess(ctx, token, user); err != nil {
		u.log.WithError(err).Warn("session persist failed")
	}
	return user, nil
}

// UpdateProfile はバックエンドを更新してから、ストアには指定項目だけをマージする。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, auth *store.AuthStore, in ProfileUpdateInput) (model.UserProfile, error) {
	if !auth.IsAuthenticated() {
		return model.UserProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	updated, err := u.backend.UpdateProfile(ctx, auth.Token(), backend.ProfileUpdateRequest{
		Name:         in.Name,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Address:      in.Address,
	})
	if err != nil {
		return model.UserProfile{}, u.authError(ctx, auth, err)
	}

	if err := auth.UpdateUser(ctx, store.UserUpdate{
		Name:         in.Name,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Address:      in.Address,
	}); err != nil {
		u.log.WithError(err).Warn("session persist failed")
	}

	return updated, nil
}

// 401が返ってきたらローカルセッションも破棄する
func (u *AuthUsecase) authError(ctx context.Context, auth *store.AuthStore, err error) error {
	if backend.IsKind(err, backend.KindUnauthorized) {
		_ = auth.Logout(ctx)
	}
	return fromBackend(err)
}
