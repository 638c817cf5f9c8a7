package usecase

import (
	"context"

	"storefront/internal/backend"
	"storefront/internal/domain/model"
	"storefront/internal/payment"
	"storefront/internal/store"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// チェックアウトの終端結果。1回の試行につき必ずどれか1つで終わる。
type Outcome string

const (
	OutcomeSucceeded           Outcome = "succeeded"
	OutcomeNotReady            Outcome = "not_ready"
	OutcomeNoSession           Outcome = "no_session"
	OutcomeEmptyCart           Outcome = "empty_cart"
	OutcomeInvalidFields       Outcome = "invalid_fields"
	OutcomeNoClientSecret      Outcome = "no_client_secret"
	OutcomeCardElementMissing  Outcome = "card_element_missing"
	OutcomePaymentDeclined     Outcome = "payment_declined"
	OutcomePaymentIncomplete   Outcome = "payment_incomplete"
	OutcomeOrderCreationFailed Outcome = "order_creation_failed"
)

// チェックアウトが使うバックエンド操作
type CheckoutBackend interface {
	CreatePaymentIntent(ctx context.Context, token string, amountMinor int64, currency string) (string, error)
	CreateOrder(ctx context.Context, token string, idemKey string, req backend.CreateOrderRequest) (int64, error)
}

type CheckoutInput struct {
	// ブラウザ側SDKがトークナイズした支払い手段の参照
	PaymentMethod string
}

type CheckoutResult struct {
	Outcome Outcome           `json:"outcome"`
	OrderID int64             `json:"order_id,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// CheckoutUsecase は決済承認→決済確定→注文作成を一直線に進める。
// リトライも途中分岐も巻き戻しも無い。状態は持たない。
type CheckoutUsecase struct {
	backend  CheckoutBackend
	proc     payment.Processor
	currency string
	log      logrus.FieldLogger
}

// DI
func NewCheckoutUsecase(b CheckoutBackend, proc payment.Processor, currency string, log logrus.FieldLogger) *CheckoutUsecase {
	return &CheckoutUsecase{
		backend:  b,
		proc:     proc,
		currency: currency,
		log:      log,
	}
}

func (u *CheckoutUsecase) Run(ctx context.Context, cart *store.CartStore, auth *store.AuthStore, in CheckoutInput) CheckoutResult {
	// 0. 事前チェック。ここで落ちたら外部呼び出しは一切しない。
	if !u.proc.Ready() {
		return CheckoutResult{Outcome: OutcomeNotReady, Message: "payment is not ready"}
	}

	user, ok := auth.User()
	if !ok {
		return CheckoutResult{Outcome: OutcomeNoSession, Message: "please log in"}
	}

	//カートのスナップショット。以降の注文明細はこれを使う。
	items := cart.Items()
	if len(items) == 0 {
		return CheckoutResult{Outcome: OutcomeEmptyCart, Message: "cart is empty"}
	}

	//請求先の項目チェック（ローカル検証。バックエンドエラーとは別物）
	if fields := validator.ValidateBilling(user); len(fields) > 0 {
		return CheckoutResult{Outcome: OutcomeInvalidFields, Message: "invalid fields", Fields: fields}
	}

	total := cart.TotalPrice()

	// 1. 決済承認ハンドルを取得。金額は最小通貨単位に丸める。
	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	clientSecret, err := u.backend.CreatePaymentIntent(ctx, auth.Token(), amountMinor, u.currency)
	if err != nil || clientSecret == "" {
		if err != nil {
			u.log.WithError(err).Warn("payment intent creation failed")
		}
		return CheckoutResult{Outcome: OutcomeNoClientSecret, Message: "could not start payment"}
	}

	// 2. 支払い手段の参照を確認
	if in.PaymentMethod == "" {
		return CheckoutResult{Outcome: OutcomeCardElementMissing, Message: "card details missing"}
	}

	// 3. 決済確定
	conf, err := u.proc.Confirm(ctx, clientSecret, in.PaymentMethod, billingFromProfile(user))
	if err != nil {
		if de, ok := payment.AsDeclined(err); ok {
			//プロセッサーのメッセージをそのまま出す
			return CheckoutResult{Outcome: OutcomePaymentDeclined, Message: de.Message}
		}
		u.log.WithError(err).Warn("payment confirmation failed")
		return CheckoutResult{Outcome: OutcomePaymentDeclined, Message: "connection error"}
	}
	if conf.Status != payment.StatusSucceeded {
		return CheckoutResult{Outcome: OutcomePaymentIncomplete, Message: "payment did not complete"}
	}

	// 4. 注文作成。二重送信防止キーは試行ごとに1つ。
	orderID, err := u.backend.CreateOrder(ctx, auth.Token(), uuid.NewString(), backend.CreateOrderRequest{
		TotalPrice:    total,
		PaymentID:     conf.ID,
		PaymentStatus: conf.Status,
		Items:         flattenItems(items),
	})
	if err != nil {
		//決済は確定済みなのに注文が作れていない。自動返金はしない（照合ギャップとして記録）。
		u.log.WithError(err).WithField("payment_id", conf.ID).
			Error("order creation failed after captured payment, manual reconciliation required")
		return CheckoutResult{Outcome: OutcomeOrderCreationFailed, Message: "order could not be created"}
	}

	// 5. 完了。カートを空にする。
	if err := cart.Clear(ctx); err != nil {
		u.log.WithError(err).Warn("cart clear failed after checkout")
	}

	return CheckoutResult{Outcome: OutcomeSucceeded, OrderID: orderID}
}

// カート明細を注文用にフラット化する
func flattenItems(items []model.CartItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.OrderItem{
			ProductID: it.ProductID,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out
}
