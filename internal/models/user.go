package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string `gorm:"uniqueIndex;size:255"`
	FullName     string `gorm:"size:100"`
	PasswordHash string
	IsActive     bool `gorm:"default:true"`
}

// BeforeCreate assigns an ID so callers have it before the insert returns.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
