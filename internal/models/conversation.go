package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a titled thread of messages owned by a single user.
// UserID never changes after creation.
type Conversation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Title        string    `gorm:"size:200"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	MessageCount int       `gorm:"default:0"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
