package kv

import (
	"context"
	"errors"
	"time"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kv_entriesテーブルの1行
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key;type:varchar(255)"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// Postgres実装（gorm）。複数インスタンスで状態を共有する場合に使う。
type Gorm struct {
	db *gorm.DB
}

// DI
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry

	err := g.db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	//同一キーは上書き
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	//無いキーの削除はno-op
	return g.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&Entry{}).Error
}
