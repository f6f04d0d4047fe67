package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/setterhq/setter-crm/internal/assistant"
)

type assistantChatRequest struct {
	Messages []assistant.Message `json:"messages" binding:"required"`
}

func (s *Server) handleAssistantChat(c *gin.Context) {
	userID := currentUserID(c)

	allowed, err := s.chatLimiter.Allow(c.Request.Context(), userID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !allowed {
		AbortWithError(c, ErrTooManyChats)
		return
	}

	var req assistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	reply, chatID, err := s.assistantsvc.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chat_id": chatID,
		"reply":   reply,
	})
}
