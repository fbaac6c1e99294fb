package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/internal/api/middleware"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
	"github.com/qs3c/mood_chat_server/internal/service"
)

type QuotaHandler struct {
	quotaService *service.QuotaService
}

func NewQuotaHandler(quotaService *service.QuotaService) *QuotaHandler {
	return &QuotaHandler{
		quotaService: quotaService,
	}
}

// GetQuota 获取用户配额信息
// GET /api/quota/:user_id
func (h *QuotaHandler) GetQuota(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.quotaService.GetQuotaInfo(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		log.Printf("[%s] quota info for user %d: %v", middleware.GetRequestID(c), userID, err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
