package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message roles. The orchestrator only ever writes these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a conversation. Messages are immutable once
// created; ordering within a conversation is by Timestamp, with CreatedAt
// breaking ties.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ConversationID uuid.UUID `gorm:"type:uuid;index"`
	Role           string    `gorm:"type:varchar(10);check:role IN ('user', 'assistant')"`
	Content        string    `gorm:"type:text"`
	Timestamp      time.Time
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}
