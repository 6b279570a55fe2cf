// Package chat implements the conversation orchestrator: resolving or
// creating a conversation, enforcing ownership, appending messages, calling
// the model gateway and keeping the conversation counters consistent.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/ai"
	"github.com/trafficai/backend/internal/models"
	"github.com/trafficai/backend/internal/store"
)

// ErrForbidden is returned when the caller is not the conversation's owner.
var ErrForbidden = errors.New("conversation belongs to another user")

const defaultTitle = "New Traffic Law Question"

// ConversationStore is the subset of conversation persistence the
// orchestrator needs.
type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	// AddMessages must be an atomic increment, not read-modify-write.
	AddMessages(ctx context.Context, id uuid.UUID, n int) error
}

// MessageStore is the subset of message persistence the orchestrator needs.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	History(ctx context.Context, conversationID uuid.UUID, limit int) ([]ai.Message, error)
}

// Result is the outcome of a successful Ask.
type Result struct {
	Reply          string
	ConversationID uuid.UUID
	MessageID      uuid.UUID
}

// Orchestrator runs the ask flow over the stores and the model gateway.
type Orchestrator struct {
	conversations ConversationStore
	messages      MessageStore
	completer     ai.Completer
	historyLimit  int
	logger        *zap.Logger
}

func NewOrchestrator(conversations ConversationStore, messages MessageStore, completer ai.Completer, historyLimit int, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		conversations: conversations,
		messages:      messages,
		completer:     completer,
		historyLimit:  historyLimit,
		logger:        logger,
	}
}

// Ask appends the user's question to a conversation (creating one when
// conversationID is nil), asks the model for a reply with bounded history
// as context, appends that reply and returns it.
//
// The user message is persisted before the gateway call and is kept even
// when the call fails: conversation history reflects what was actually
// asked. The message counter is bumped once per appended message with an
// atomic increment, so count always matches the persisted messages, on the
// failure path included.
func (o *Orchestrator) Ask(ctx context.Context, userID uuid.UUID, messageText string, conversationID *uuid.UUID) (*Result, error) {
	conv, err := o.resolveConversation(ctx, userID, messageText, conversationID)
	if err != nil {
		return nil, err
	}

	// History is fetched before appending so the prompt context holds only
	// prior turns; the current question rides separately in the prompt.
	history, err := o.messages.History(ctx, conv.ID, o.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	if err := o.appendMessage(ctx, conv.ID, models.RoleUser, messageText); err != nil {
		return nil, err
	}

	prompt := ai.BuildPrompt(messageText, history, o.historyLimit)
	reply, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		o.logger.Warn("model gateway call failed, keeping user message",
			zap.String("conversationID", conv.ID.String()),
			zap.Error(err))
		return nil, err
	}

	assistantMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleAssistant,
		Content:        reply,
	}
	if err := o.messages.Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}
	if err := o.conversations.AddMessages(ctx, conv.ID, 1); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	return &Result{
		Reply:          reply,
		ConversationID: conv.ID,
		MessageID:      assistantMsg.ID,
	}, nil
}

// resolveConversation loads and owner-checks an existing conversation, or
// creates a fresh one titled after the question.
func (o *Orchestrator) resolveConversation(ctx context.Context, userID uuid.UUID, messageText string, conversationID *uuid.UUID) (*models.Conversation, error) {
	if conversationID != nil {
		conv, err := o.conversations.GetByID(ctx, *conversationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		if conv.UserID != userID {
			return nil, ErrForbidden
		}
		return conv, nil
	}

	conv := &models.Conversation{
		Title:  GenerateTitle(messageText),
		UserID: userID,
	}
	if err := o.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	o.logger.Info("created conversation",
		zap.String("conversationID", conv.ID.String()),
		zap.String("userID", userID.String()))
	return conv, nil
}

func (o *Orchestrator) appendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) error {
	msg := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := o.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to save %s message: %w", role, err)
	}
	if err := o.conversations.AddMessages(ctx, conversationID, 1); err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

// GenerateTitle derives a conversation title from its first message: the
// first 50 characters, trimmed back to a word boundary when truncation cuts
// mid-word.
func GenerateTitle(message string) string {
	title := strings.TrimSpace(message)
	if title == "" {
		return defaultTitle
	}
	// Truncate on runes, not bytes, so multi-byte text is never cut mid-rune.
	runes := []rune(title)
	if len(runes) <= 50 {
		return title
	}

	title = string(runes[:50])
	if words := strings.Fields(title); len(words) > 1 {
		title = strings.Join(words[:len(words)-1], " ") + "..."
	}
	return title
}
