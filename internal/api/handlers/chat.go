package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/ai"
	"github.com/trafficai/backend/internal/api/middleware"
	"github.com/trafficai/backend/internal/chat"
	"github.com/trafficai/backend/internal/store"
)

type AskRequest struct {
	Message        string `json:"message" binding:"required,min=1,max=1000"`
	ConversationID string `json:"conversation_id" binding:"omitempty"`
}

type AskResponse struct {
	Response       string    `json:"response"`
	ConversationID uuid.UUID `json:"conversation_id"`
	MessageID      uuid.UUID `json:"message_id"`
}

// Ask runs the conversation orchestrator for the caller's question.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var conversationID *uuid.UUID
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
			return
		}
		conversationID = &id
	}

	userID := middleware.MustUserID(c)

	result, err := h.chat.Ask(c.Request.Context(), userID, req.Message, conversationID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case errors.Is(err, chat.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this conversation"})
		case errors.Is(err, ai.ErrUpstream):
			// Generic message only; upstream details stay in the logs.
			c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is currently unavailable. Please try again."})
		default:
			h.logger.Error("ask failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process your question"})
		}
		return
	}

	// The conversation gained messages; drop any stale cached list.
	h.msgCache.Invalidate(c.Request.Context(), result.ConversationID)

	c.JSON(http.StatusOK, AskResponse{
		Response:       result.Reply,
		ConversationID: result.ConversationID,
		MessageID:      result.MessageID,
	})
}
