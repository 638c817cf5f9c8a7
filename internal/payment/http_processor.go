package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTP実装。confirmエンドポイントへ公開キー付きでPOSTする。
type HTTPProcessor struct {
	confirmURL string
	publicKey  string
	httpc      *http.Client
	log        logrus.FieldLogger
}

func NewHTTPProcessor(confirmURL string, publicKey string, timeout time.Duration, log logrus.FieldLogger) *HTTPProcessor {
	return &HTTPProcessor{
		confirmURL: confirmURL,
		publicKey:  publicKey,
		httpc:      &http.Client{Timeout: timeout},
		log:        log,
	}
}

// 設定が揃っていなければSDK未ロード相当の扱いにする
func (p *HTTPProcessor) Ready() bool {
	return p.confirmURL != "" && p.publicKey != ""
}

type confirmRequest struct {
	ClientSecret   string         `json:"client_secret"`
	PaymentMethod  string         `json:"payment_method"`
	BillingDetails BillingDetails `json:"billing_details"`
}

type confirmResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *HTTPProcessor) Confirm(ctx context.Context, clientSecret string, method string, billing BillingDetails) (Confirmation, error) {
	body, err := json.Marshal(confirmRequest{
		ClientSecret:   clientSecret,
		PaymentMethod:  method,
		BillingDetails: billing,
	})
	if err != nil {
		return Confirmation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.confirmURL, bytes.NewReader(body))
	if err != nil {
		return Confirmation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.publicKey)

	resp, err := p.httpc.Do(req)
	if err != nil {
		p.log.WithError(err).Warn("payment confirm request failed")
		return Confirmation{}, err
	}
	defer resp.Body.Close()

	var out confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Confirmation{}, err
	}

	//プロセッサー側のエラーメッセージはそのまま伝える
	if out.Error != nil {
		return Confirmation{}, &DeclinedError{Message: out.Error.Message}
	}

	return Confirmation{ID: out.ID, Status: out.Status}, nil
}
