package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/api"
	"github.com/qs3c/mood_chat_server/internal/api/handler"
	"github.com/qs3c/mood_chat_server/internal/database"
	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/pkg/llm"
	"github.com/qs3c/mood_chat_server/internal/pkg/pubsub"
	"github.com/qs3c/mood_chat_server/internal/pkg/ws"
	"github.com/qs3c/mood_chat_server/internal/repository"
	"github.com/qs3c/mood_chat_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Printf("Database connected (%s)", cfg.Database.Driver)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// Redis 可选，未配置时不推送实时事件
	var publisher *pubsub.Publisher
	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer rdb.Close()
		log.Println("Redis connected")

		publisher = pubsub.NewPublisher(rdb)
		go subscribeTurns(rootCtx, rdb, wsHub)
	} else {
		log.Println("Redis not configured, live turn events disabled")
	}

	// 初始化模型后端
	responder := newResponder(rootCtx, cfg)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)

	// 初始化 Service
	quotaService := service.NewQuotaService(userRepo, convRepo, cfg)
	statsService, err := service.NewStatsService(convRepo, cfg)
	if err != nil {
		log.Fatalf("Failed to init stats service: %v", err)
	}
	userService := service.NewUserService(userRepo)
	conversationService := service.NewConversationService(convRepo)
	messageService := service.NewMessageService(quotaService, responder, convRepo, publisher, cfg)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewMessageHandler(messageService),
		handler.NewConversationHandler(conversationService),
		handler.NewStatsHandler(statsService),
		handler.NewUserHandler(userService),
		handler.NewQuotaHandler(quotaService),
		handler.NewModelsHandler(responder),
		handler.NewWebSocketHandler(wsHub, userService, cfg.CORS.AllowedOrigins),
		handler.NewHealthHandler(db),
		cfg,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

func newResponder(ctx context.Context, cfg *config.Config) *llm.Responder {
	var openai, gemini llm.Client

	if cfg.LLM.OpenAI.APIKey != "" {
		openai = llm.NewOpenAIClient(cfg.LLM.OpenAI, cfg.LLM.Timeout())
	} else {
		log.Println("OpenAI api key not set, openai requests will use the fallback reply")
	}

	if cfg.LLM.Gemini.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.LLM.Gemini)
		if err != nil {
			log.Printf("Failed to init gemini client: %v", err)
		} else {
			gemini = client
		}
	} else {
		log.Println("Gemini api key not set, gemini requests will use the fallback reply")
	}

	defaultProvider := model.ResolveProvider(cfg.LLM.DefaultProvider, model.ProviderOpenAI)
	return llm.NewResponder(openai, gemini, defaultProvider, cfg.LLM.Timeout())
}

// subscribeTurns 把 Redis 上的对话事件转发给 WebSocket 连接，断线后重试
func subscribeTurns(ctx context.Context, rdb *redis.Client, hub *ws.Hub) {
	subscriber := pubsub.NewSubscriber(rdb)
	for {
		err := subscriber.Subscribe(ctx, hub.ForwardTurn)
		if ctx.Err() != nil {
			return
		}
		log.Printf("Turn subscriber stopped: %v, retrying in 5s", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
