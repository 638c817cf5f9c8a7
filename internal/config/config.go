package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	APIBaseURL        string // リモートバックエンドのベースURL
	PaymentConfirmURL string // 決済プロセッサーのconfirmエンドポイント
	PaymentPublicKey  string // 決済プロセッサーの公開キー
	Currency          string // 決済通貨（固定）

	StorageDriver string // memory / file / postgres
	StoragePath   string // fileドライバーの保存先

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		APIBaseURL:        os.Getenv("API_BASE_URL"),
		PaymentConfirmURL: os.Getenv("PAYMENT_CONFIRM_URL"),
		PaymentPublicKey:  os.Getenv("PAYMENT_PUBLIC_KEY"),
		Currency:          getenv("CURRENCY", "usd"),

		StorageDriver: getenv("STORAGE_DRIVER", "file"),
		StoragePath:   getenv("STORAGE_PATH", "data/storefront.json"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.PaymentConfirmURL == "" {
		return Config{}, fmt.Errorf("PAYMENT_CONFIRM_URL is required")
	}
	if cfg.PaymentPublicKey == "" {
		return Config{}, fmt.Errorf("PAYMENT_PUBLIC_KEY is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	switch cfg.StorageDriver {
	case "memory", "file", "postgres":
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be memory, file or postgres")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
