package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// リモートバックエンドAPIのクライアント。
// 認証が要るエンドポイントはBearerトークンを都度受け取る。
type Client struct {
	base  string
	httpc *http.Client
	log   logrus.FieldLogger
}

func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		base:  baseURL,
		httpc: &http.Client{Timeout: timeout},
		log:   log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type ProfileUpdateRequest struct {
	Name         *string        `json:"name,omitempty"`
	Email        *string        `json:"email,omitempty"`
	MobileNumber *string        `json:"mobile_number,omitempty"`
	Address      *model.Address `json:"address,omitempty"`
}

type PaymentIntentRequest struct {
	Amount   int64  `json:"amount"` // 最小通貨単位
	Currency string `json:"currency"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type CreateOrderRequest struct {
	TotalPrice    decimal.Decimal   `json:"total_price"`
	PaymentID     string            `json:"payment_id"`
	PaymentStatus string            `json:"payment_status"`
	Items         []model.OrderItem `json:"items"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", "", req, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.UserProfile, error) {
	var out model.UserProfile
	err := c.do(ctx, http.MethodPost, "/auth/register", "", "", req, &out)
	return out, err
}

func (c *Client) FetchProfile(ctx context.Context, token string) (model.UserProfile, error) {
	var out model.UserProfile
	err := c.do(ctx, http.MethodGet, "/users/me", token, "", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, req ProfileUpdateRequest) (model.UserProfile, error) {
	var out model.UserProfile
	err := c.do(ctx, http.MethodPatch, "/users/me", token, "", req, &out)
	return out, err
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out struct {
		Items []model.Product `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/products", "", "", nil, &out)
	return out.Items, err
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), "", "", nil, &out)
	return out, err
}

// CreatePaymentIntent は決済承認ハンドル（client secret）を取得する。
func (c *Client) CreatePaymentIntent(ctx context.Context, token string, amountMinor int64, currency string) (string, error) {
	var out PaymentIntentResponse
	err := c.do(ctx, http.MethodPost, "/payments/intent", token, "", PaymentIntentRequest{
		Amount:   amountMinor,
		Currency: currency,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.ClientSecret, nil
}

// CreateOrder は注文を作成して新しい注文IDを返す。
// 二重送信防止キーはヘッダーで渡す。
func (c *Client) CreateOrder(ctx context.Context, token string, idemKey string, req CreateOrderRequest) (int64, error) {
	var out model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, idemKey, req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var out struct {
		Items []model.Order `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/orders", token, "", nil, &out)
	return out.Items, err
}

func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), token, "", nil, &out)
	return out, err
}

func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := c.do(ctx, http.MethodPost, "/contact", "", "", req, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", orderID), token, "", map[string]string{
		"status": string(status),
	}, &out)
	return out, err
}

func (c *Client) ListContactMessages(ctx context.Context, token string) ([]model.ContactMessage, error) {
	var out struct {
		Items []model.ContactMessage `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/admin/messages", token, "", nil, &out)
	return out.Items, err
}

func (c *Client) CloseContactMessage(ctx context.Context, token string, messageID int64) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/messages/%d/close", messageID), token, "", nil, &out)
	return out, err
}

// バックエンドのエラーボディ
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (c *Client) do(ctx context.Context, method string, path string, token string, idemKey string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &buf)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idemKey != "" {
		req.Header.Set("X-Idempotency-Key", idemKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		//通信エラーはここで閉じた種別に変換する
		c.log.WithError(err).WithField("path", path).Warn("backend unreachable")
		return &APIError{Kind: KindNetwork, Message: "connection error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindServer, Status: resp.StatusCode, Message: "invalid response"}
	}
	return nil
}

// HTTPエラーレスポンス→APIError
func (c *Client) mapError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		Kind:    kindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: msg,
		Fields:  body.Fields,
	}
}
