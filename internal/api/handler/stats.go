package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/internal/api/middleware"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
	"github.com/qs3c/mood_chat_server/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Daily 按日统计消息数和情绪
// GET /api/stats/:user_id?days=30
func (h *StatsHandler) Daily(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	// 不传 days 时由服务使用默认值
	days := 0
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			response.ParamError(c, "days must be an integer")
			return
		}
	}

	stats, err := h.statsService.DailyStats(c.Request.Context(), userID, days)
	if err != nil {
		log.Printf("[%s] daily stats for user %d: %v", middleware.GetRequestID(c), userID, err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}
