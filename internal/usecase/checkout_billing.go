package usecase

import (
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/payment"
)

// 国名→ISO 3166-1 alpha-2。プロセッサーは2文字コードしか受けない。
var countryCodes = map[string]string{
	"united states":  "US",
	"united kingdom": "GB",
	"japan":          "JP",
	"india":          "IN",
	"canada":         "CA",
	"australia":      "AU",
	"germany":        "DE",
	"france":         "FR",
	"italy":          "IT",
	"spain":          "ES",
	"netherlands":    "NL",
	"china":          "CN",
	"south korea":    "KR",
	"singapore":      "SG",
	"vietnam":        "VN",
	"brazil":         "BR",
	"mexico":         "MX",
}

// 不明な国名のフォールバック
const defaultCountryCode = "US"

// countryCode は国名を2文字コードへ正規化する。
// 既に2文字ならそのまま（大文字化のみ）。
func countryCode(name string) string {
	s := strings.TrimSpace(name)
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	if code, ok := countryCodes[strings.ToLower(s)]; ok {
		return code
	}
	return defaultCountryCode
}

// プロフィールから請求先情報を組み立てる。
// 呼び出し前に validator.ValidateBilling で完全性を確認していること。
func billingFromProfile(user model.UserProfile) payment.BillingDetails {
	b := payment.BillingDetails{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.MobileNumber,
	}

	if user.Address != nil {
		b.Address = payment.BillingAddress{
			Line1:      user.Address.Street,
			City:       user.Address.City,
			State:      user.Address.State,
			PostalCode: user.Address.PostalCode,
			Country:    countryCode(user.Address.Country),
		}
	}

	return b
}
