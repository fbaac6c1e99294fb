package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/internal/api/middleware"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
	"github.com/qs3c/mood_chat_server/internal/service"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
	}
}

// List 获取用户的对话历史
// GET /api/conversations/:user_id
func (h *ConversationHandler) List(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, err := h.conversationService.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[%s] list conversations for user %d: %v", middleware.GetRequestID(c), userID, err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}
