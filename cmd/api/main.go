package main

import (
	"os"
	"time"

	"storefront/internal/backend"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/kv"
	"storefront/internal/payment"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const clientTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.Out = os.Stdout
	log.Formatter = &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	//ローカル永続ストアを選択
	var kvStore repo.KVStore
	switch cfg.StorageDriver {
	case "memory":
		kvStore = kv.NewMemory()

	case "postgres":
		gormDB, err := db.Connect()
		if err != nil {
			log.WithError(err).Fatal("db connect failed")
		}
		if err := gormDB.AutoMigrate(&kv.Entry{}); err != nil {
			log.WithError(err).Fatal("db migrate failed")
		}
		kvStore = kv.NewGorm(gormDB)

	default:
		fileStore, err := kv.NewFile(cfg.StoragePath)
		if err != nil {
			log.WithError(err).Fatal("file store init failed")
		}
		kvStore = fileStore
	}

	//外部コラボレーター
	backendClient := backend.New(cfg.APIBaseURL, clientTimeout, log)
	processor := payment.NewHTTPProcessor(cfg.PaymentConfirmURL, cfg.PaymentPublicKey, clientTimeout, log)

	//セッションごとのストア管理
	mgr := session.NewManager(kvStore, log)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(backendClient, log)
	productUC := usecase.NewProductUsecase(backendClient)
	cartUC := usecase.NewCartUsecase(backendClient)
	checkoutUC := usecase.NewCheckoutUsecase(backendClient, processor, cfg.Currency, log)
	orderUC := usecase.NewOrderUsecase(backendClient)
	contactUC := usecase.NewContactUsecase(backendClient)
	adminUC := usecase.NewAdminUsecase(backendClient)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Order:        handler.NewOrderHandler(orderUC),
		Profile:      handler.NewProfileHandler(authUC),
		Contact:      handler.NewContactHandler(contactUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminUC),
		AdminMessage: handler.NewAdminMessageHandler(adminUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.WithField("addr", addr).Info("starting storefront")
	if err := server.Start(addr, mgr, handlers); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
