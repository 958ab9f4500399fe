package models

import "time"

// User ids are issued externally and arrive in the bearer token; rows here
// only carry optional account metadata.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:120"`
	Email     *string   `json:"email,omitempty" gorm:"uniqueIndex;size:120"`
	Name      *string   `json:"name,omitempty" gorm:"size:120"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
