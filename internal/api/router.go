package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/api/handler"
	"github.com/qs3c/mood_chat_server/internal/api/middleware"
)

type Router struct {
	messageHandler      *handler.MessageHandler
	conversationHandler *handler.ConversationHandler
	statsHandler        *handler.StatsHandler
	userHandler         *handler.UserHandler
	quotaHandler        *handler.QuotaHandler
	modelsHandler       *handler.ModelsHandler
	websocketHandler    *handler.WebSocketHandler
	healthHandler       *handler.HealthHandler
	cfg                 *config.Config
}

func NewRouter(
	messageHandler *handler.MessageHandler,
	conversationHandler *handler.ConversationHandler,
	statsHandler *handler.StatsHandler,
	userHandler *handler.UserHandler,
	quotaHandler *handler.QuotaHandler,
	modelsHandler *handler.ModelsHandler,
	websocketHandler *handler.WebSocketHandler,
	healthHandler *handler.HealthHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		messageHandler:      messageHandler,
		conversationHandler: conversationHandler,
		statsHandler:        statsHandler,
		userHandler:         userHandler,
		quotaHandler:        quotaHandler,
		modelsHandler:       modelsHandler,
		websocketHandler:    websocketHandler,
		healthHandler:       healthHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	if r.cfg.Server.Mode != "test" {
		engine.Use(gin.Logger())
	}
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/healthz", r.healthHandler.Check)

	api := engine.Group("/api")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 对话
		api.POST("/messages", r.messageHandler.Create)
		api.GET("/conversations/:user_id", r.conversationHandler.List)
		api.GET("/stats/:user_id", r.statsHandler.Daily)

		// 用户
		api.POST("/create_user", r.userHandler.Create)
		api.GET("/quota/:user_id", r.quotaHandler.GetQuota)

		// 模型
		api.GET("/models", r.modelsHandler.List)
	}

	return engine
}
