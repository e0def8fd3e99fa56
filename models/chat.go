package models

import (
	"time"
)

// Chat message sender constants
const (
	ChatSenderUser  = "user"
	ChatSenderAgent = "agent"
)

// ChatMessage is one entry in a user's support conversation log
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Sender    string    `json:"sender"` // user or agent
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
