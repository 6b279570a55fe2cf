package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trafficai/backend/internal/ai"
	"github.com/trafficai/backend/internal/models"
)

// Messages persists conversation messages.
type Messages struct {
	db *gorm.DB
}

func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

func (s *Messages) Create(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

// ListByConversation returns all messages of a conversation in chronological
// order. Ties on timestamp fall back to insertion order via created_at.
func (s *Messages) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// History returns the last limit messages of a conversation in chronological
// order, shaped for prompt assembly.
func (s *Messages) History(ctx context.Context, conversationID uuid.UUID, limit int) ([]ai.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp DESC, created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	history := make([]ai.Message, len(messages))
	for i, msg := range messages {
		history[len(messages)-1-i] = ai.Message{Role: msg.Role, Content: msg.Content}
	}
	return history, nil
}
