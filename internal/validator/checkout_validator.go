package validator

import (
	"regexp"
	"strings"

	"storefront/internal/domain/model"
)

// 請求先として使えるプロフィールかを項目単位で検証する。
// 戻り値は 項目名→メッセージ。空mapならエラーなし。
func ValidateBilling(user model.UserProfile) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(user.Name) == "" {
		fields["name"] = "name required"
	}

	if user.Address == nil {
		fields["address"] = "address required"
		return fields
	}

	a := user.Address
	if a.IsComplete() {
		return fields
	}

	if strings.TrimSpace(a.Street) == "" {
		fields["address.street"] = "street required"
	}
	if strings.TrimSpace(a.City) == "" {
		fields["address.city"] = "city required"
	}
	if strings.TrimSpace(a.State) == "" {
		fields["address.state"] = "state required"
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		fields["address.postal_code"] = "postal code required"
	}
	if strings.TrimSpace(a.Country) == "" {
		fields["address.country"] = "country required"
	}

	return fields
}

// お問い合わせフォームの入力を検証
func ValidateContact(name string, email string, message string) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(name) == "" {
		fields["name"] = "name required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email required"
	} else if !isEmailLike(email) {
		fields["email"] = "invalid email"
	}
	if strings.TrimSpace(message) == "" {
		fields["message"] = "message required"
	}

	return fields
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
