package model

import "time"

type MessageStatus string

const (
	MessageStatusOpen   MessageStatus = "OPEN"
	MessageStatusClosed MessageStatus = "CLOSED"
)

// お問い合わせメッセージ
type ContactMessage struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
