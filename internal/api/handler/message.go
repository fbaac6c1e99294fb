package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/internal/api/middleware"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
	"github.com/qs3c/mood_chat_server/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Create 发送消息并获取回复
// POST /api/messages
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	conv, err := h.messageService.Send(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrQuotaExceeded):
			response.QuotaError(c, "")
		default:
			log.Printf("[%s] send message for user %d: %v", middleware.GetRequestID(c), req.UserID, err)
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, dto.CreateMessageResponse{Conversation: conv})
}
