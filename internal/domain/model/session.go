package model

// ログインセッション。tokenとuserは必ずペアで設定・破棄する。
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user,omitempty"`
}

// token と user が両方あるときだけ認証済み
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}
