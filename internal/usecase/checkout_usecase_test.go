package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"storefront/internal/backend"
	"storefront/internal/domain/model"
	"storefront/internal/infra/kv"
	"storefront/internal/payment"
	"storefront/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

type checkoutBackendMock struct {
	mock.Mock
}

func (m *checkoutBackendMock) CreatePaymentIntent(ctx context.Context, token string, amountMinor int64, currency string) (string, error) {
	args := m.Called(ctx, token, amountMinor, currency)
	return args.String(0), args.Error(1)
}

func (m *checkoutBackendMock) CreateOrder(ctx context.Context, token string, idemKey string, req backend.CreateOrderRequest) (int64, error) {
	args := m.Called(ctx, token, idemKey, req)
	return args.Get(0).(int64), args.Error(1)
}

type processorMock struct {
	mock.Mock
}

func (m *processorMock) Ready() bool {
	return m.Called().Bool(0)
}

func (m *processorMock) Confirm(ctx context.Context, clientSecret string, method string, billing payment.BillingDetails) (payment.Confirmation, error) {
	args := m.Called(ctx, clientSecret, method, billing)
	return args.Get(0).(payment.Confirmation), args.Error(1)
}

func checkoutUser() model.UserProfile {
	return model.UserProfile{
		ID:           1,
		Name:         "Taro",
		Email:        "taro@example.com",
		MobileNumber: "090-0000-0000",
		Address: &model.Address{
			Street:     "1-2-3 Chuo",
			City:       "Osaka",
			State:      "Osaka",
			PostalCode: "530-0001",
			Country:    "Japan",
		},
		Roles: []string{"USER"},
	}
}

// ログイン済み＋「5.00 × 2」のカートを持つセッションを用意する
func checkoutSession(t *testing.T, user model.UserProfile, withItems bool) (*store.CartStore, *store.AuthStore) {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()

	cart := store.NewCartStore(ctx, mem, "cart:s", testLogger())
	if withItems {
		p := model.Product{ID: 1, Name: "Coffee", Price: decimal.RequireFromString("5.00"), IsActive: true}
		assert.NoError(t, cart.AddItem(ctx, p, 2))
	}

	auth := store.NewAuthStore(ctx, mem, "auth:s", testLogger())
	assert.NoError(t, auth.LoginSuccess(ctx, "tok", user))

	return cart, auth
}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)

	proc.On("Ready").Return(true)
	//金額は最小通貨単位：5.00 × 2 → 1000
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.Anything).
		Return(payment.Confirmation{ID: "pi_1", Status: payment.StatusSucceeded}, nil)
	b.On("CreateOrder", mock.Anything, "tok", mock.AnythingOfType("string"), mock.MatchedBy(func(req backend.CreateOrderRequest) bool {
		return req.TotalPrice.Equal(decimal.RequireFromString("10.00")) &&
			req.PaymentID == "pi_1" &&
			req.PaymentStatus == payment.StatusSucceeded &&
			len(req.Items) == 1 &&
			req.Items[0].ProductID == 1 &&
			req.Items[0].Quantity == 2
	})).Return(int64(77), nil)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(ctx, cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, int64(77), res.OrderID)
	//成功後はカートが空になる
	assert.Equal(t, 0, len(cart.Items()))

	b.AssertExpectations(t)
	proc.AssertExpectations(t)
}

func TestCheckout_NotReady(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(false)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeNotReady, res.Outcome)
	b.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_NoSession(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	cart := store.NewCartStore(ctx, mem, "cart:s", testLogger())
	auth := store.NewAuthStore(ctx, mem, "auth:s", testLogger())

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(ctx, cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeNoSession, res.Outcome)
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), false)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeEmptyCart, res.Outcome)
	b.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_IncompleteBillingAddress(t *testing.T) {
	user := checkoutUser()
	user.Address = &model.Address{Street: "1-2-3 Chuo"} //他が欠けている
	cart, auth := checkoutSession(t, user, true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeInvalidFields, res.Outcome)
	assert.NotEmpty(t, res.Fields)
	b.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_IntentFailure(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").
		Return("", &backend.APIError{Kind: backend.KindNetwork, Message: "connection error"})

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeNoClientSecret, res.Outcome)
	proc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_EmptyClientSecret(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("", nil)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeNoClientSecret, res.Outcome)
}

func TestCheckout_MissingPaymentMethod(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{})

	assert.Equal(t, OutcomeCardElementMissing, res.Outcome)
	proc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_Declined_PassesProcessorMessage(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.Anything).
		Return(payment.Confirmation{}, &payment.DeclinedError{Message: "Your card was declined."})

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomePaymentDeclined, res.Outcome)
	assert.Equal(t, "Your card was declined.", res.Message)
	//失敗したらカートはそのまま
	assert.Equal(t, 1, len(cart.Items()))
	b.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_ProcessorTransportError(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.Anything).
		Return(payment.Confirmation{}, errors.New("dial tcp: connection refused"))

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomePaymentDeclined, res.Outcome)
	assert.Equal(t, "connection error", res.Message)
}

func TestCheckout_PaymentIncomplete(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.Anything).
		Return(payment.Confirmation{ID: "pi_1", Status: "processing"}, nil)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomePaymentIncomplete, res.Outcome)
	b.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_OrderCreationFailed_KeepsCart(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.Anything).
		Return(payment.Confirmation{ID: "pi_1", Status: payment.StatusSucceeded}, nil)
	b.On("CreateOrder", mock.Anything, "tok", mock.AnythingOfType("string"), mock.Anything).
		Return(int64(0), &backend.APIError{Kind: backend.KindServer, Status: 500, Message: "boom"})

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeOrderCreationFailed, res.Outcome)
	//決済済みでも自動返金はしないので、カートは残す
	assert.Equal(t, 1, len(cart.Items()))
}

func TestCheckout_BillingCountryNormalized(t *testing.T) {
	cart, auth := checkoutSession(t, checkoutUser(), true)

	b := new(checkoutBackendMock)
	proc := new(processorMock)
	proc.On("Ready").Return(true)
	b.On("CreatePaymentIntent", mock.Anything, "tok", int64(1000), "usd").Return("cs_1", nil)
	proc.On("Confirm", mock.Anything, "cs_1", "pm_1", mock.MatchedBy(func(bd payment.BillingDetails) bool {
		return bd.Address.Country == "JP" && bd.Name == "Taro"
	})).Return(payment.Confirmation{ID: "pi_1", Status: payment.StatusSucceeded}, nil)
	b.On("CreateOrder", mock.Anything, "tok", mock.AnythingOfType("string"), mock.Anything).Return(int64(1), nil)

	uc := NewCheckoutUsecase(b, proc, "usd", testLogger())
	res := uc.Run(context.Background(), cart, auth, CheckoutInput{PaymentMethod: "pm_1"})

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	proc.AssertExpectations(t)
}
