package models

import "time"

// Conversation.UpdatedAt is touched on every message append so listing by
// recent activity stays a plain ORDER BY.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;size:120;not null"`
	Title     string    `json:"title" gorm:"size:200;not null;default:'New Conversation'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"-" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

func (Conversation) TableName() string { return "chat_conversations" }
