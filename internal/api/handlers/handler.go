package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/cache"
	"github.com/trafficai/backend/internal/chat"
	"github.com/trafficai/backend/internal/models"
)

// UserStore is the user persistence the handlers need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchActivity(ctx context.Context, id uuid.UUID) error
}

// ConversationStore is the conversation persistence the handlers need.
type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageStore is the message persistence the handlers need.
type MessageStore interface {
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
}

// Asker runs the conversation orchestrator's ask operation.
type Asker interface {
	Ask(ctx context.Context, userID uuid.UUID, messageText string, conversationID *uuid.UUID) (*chat.Result, error)
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// Handler is the core struct with all dependencies
type Handler struct {
	users         UserStore
	conversations ConversationStore
	messages      MessageStore
	chat          Asker
	tokens        TokenIssuer
	msgCache      *cache.MessageCache
	logger        *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(users UserStore, conversations ConversationStore, messages MessageStore, asker Asker, tokens TokenIssuer, msgCache *cache.MessageCache, logger *zap.Logger) *Handler {
	return &Handler{
		users:         users,
		conversations: conversations,
		messages:      messages,
		chat:          asker,
		tokens:        tokens,
		msgCache:      msgCache,
		logger:        logger,
	}
}
