package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the account a reservation belongs to. The notification
// payloads only need the email and display name.
type User struct {
	ID       string `gorm:"column:id;primaryKey"`
	Email    string `gorm:"column:email;index"`
	FullName string `gorm:"column:full_name"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
