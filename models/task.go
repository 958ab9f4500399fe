package models

import "time"

type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;size:120;not null"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"size:1000"`
	Completed   bool       `json:"completed" gorm:"index;not null;default:false"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
