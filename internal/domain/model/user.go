package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// バックエンドが返すユーザープロフィール
type UserProfile struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	MobileNumber string   `json:"mobile_number"`
	Address      *Address `json:"address,omitempty"`
	Roles        []string `json:"roles"`
}

func (u UserProfile) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}
