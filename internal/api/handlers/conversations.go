package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/api/middleware"
	"github.com/trafficai/backend/internal/cache"
	"github.com/trafficai/backend/internal/models"
	"github.com/trafficai/backend/internal/store"
)

type CreateConversationRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

type ConversationResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	UserID       uuid.UUID `json:"user_id"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

func convertToConversationResponse(conv *models.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:           conv.ID,
		Title:        conv.Title,
		UserID:       conv.UserID,
		MessageCount: conv.MessageCount,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
}

// CreateConversation creates an empty conversation owned by the caller.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	conv := &models.Conversation{
		Title:  req.Title,
		UserID: middleware.MustUserID(c),
	}

	if err := h.conversations.Create(c.Request.Context(), conv); err != nil {
		h.logger.Error("failed to create conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusCreated, convertToConversationResponse(conv))
}

// ListConversations returns the caller's conversations, most recent first.
func (h *Handler) ListConversations(c *gin.Context) {
	userID := middleware.MustUserID(c)

	convs, err := h.conversations.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list conversations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	response := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		response = append(response, convertToConversationResponse(&convs[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetConversation returns one conversation after an ownership check.
func (h *Handler) GetConversation(c *gin.Context) {
	conv, ok := h.ownedConversation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, convertToConversationResponse(conv))
}

// GetConversationMessages returns a conversation's messages in
// chronological order, reading through the Redis cache when possible.
func (h *Handler) GetConversationMessages(c *gin.Context) {
	conv, ok := h.ownedConversation(c)
	if !ok {
		return
	}

	// Ownership was checked against the database above, so a cached list is
	// safe to serve.
	if cached, hit := h.msgCache.Get(c.Request.Context(), conv.ID); hit {
		response := make([]MessageResponse, 0, len(cached))
		for _, msg := range cached {
			response = append(response, MessageResponse{
				ID:             msg.ID,
				ConversationID: msg.ConversationID,
				Role:           msg.Role,
				Content:        msg.Content,
				Timestamp:      msg.Timestamp,
			})
		}
		c.JSON(http.StatusOK, response)
		return
	}

	messages, err := h.messages.ListByConversation(c.Request.Context(), conv.ID)
	if err != nil {
		h.logger.Error("failed to fetch messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	cached := make([]cache.CachedMessage, 0, len(messages))
	response := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		cached = append(cached, cache.CachedMessage{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			Role:           msg.Role,
			Content:        msg.Content,
			Timestamp:      msg.Timestamp,
		})
		response = append(response, MessageResponse{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			Role:           msg.Role,
			Content:        msg.Content,
			Timestamp:      msg.Timestamp,
		})
	}
	h.msgCache.Replace(c.Request.Context(), conv.ID, cached)

	c.JSON(http.StatusOK, response)
}

// DeleteConversation removes a conversation and all of its messages.
func (h *Handler) DeleteConversation(c *gin.Context) {
	conv, ok := h.ownedConversation(c)
	if !ok {
		return
	}

	if err := h.conversations.Delete(c.Request.Context(), conv.ID); err != nil {
		h.logger.Error("failed to delete conversation",
			zap.String("conversationID", conv.ID.String()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
		return
	}

	h.msgCache.Invalidate(c.Request.Context(), conv.ID)

	c.Status(http.StatusNoContent)
}

// ownedConversation parses the :id parameter, loads the conversation and
// enforces ownership. It writes the error response itself and reports
// success through the second return value.
func (h *Handler) ownedConversation(c *gin.Context) (*models.Conversation, bool) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return nil, false
	}

	conv, err := h.conversations.GetByID(c.Request.Context(), conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return nil, false
		}
		h.logger.Error("failed to load conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return nil, false
	}

	if conv.UserID != middleware.MustUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this conversation"})
		return nil, false
	}

	return conv, true
}
