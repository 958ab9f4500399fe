package models

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message rows are immutable once written. UserID is a denormalized copy of
// the conversation owner so message queries can filter by caller directly.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"index;size:120;not null"`
	ConversationID uint      `json:"conversation_id" gorm:"index;not null"`
	Content        string    `json:"content" gorm:"size:2000;not null"`
	Sender         string    `json:"sender" gorm:"size:20;not null"` // "user" or "bot"
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }
