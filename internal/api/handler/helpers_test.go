package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/pkg/llm"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
	"github.com/qs3c/mood_chat_server/internal/pkg/ws"
	"github.com/qs3c/mood_chat_server/internal/repository"
	"github.com/qs3c/mood_chat_server/internal/service"
	"github.com/qs3c/mood_chat_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubClient struct {
	out string
	err error
}

func (c *stubClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	return c.out, c.err
}

type testContext struct {
	DB     *gorm.DB
	Router *gin.Engine
	OpenAI *stubClient
	Hub    *ws.Hub
}

// setupHandlers 用 sqlite 和固定回复的模型后端装配全部接口
func setupHandlers(t *testing.T) (*testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.URL = ":memory:"

	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)

	openai := &stubClient{out: `{"response": "I'm here for you.", "mood": "sad"}`}
	responder := llm.NewResponder(openai, nil, model.ProviderOpenAI, time.Second)

	quotaService := service.NewQuotaService(userRepo, convRepo, cfg)
	statsService, err := service.NewStatsService(convRepo, cfg)
	require.NoError(t, err)
	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(quotaService, responder, convRepo, nil, cfg)
	conversationService := service.NewConversationService(convRepo)
	hub := ws.NewHub()

	router := gin.New()
	router.GET("/healthz", NewHealthHandler(db).Check)
	api := router.Group("/api")
	api.POST("/messages", NewMessageHandler(messageService).Create)
	api.GET("/conversations/:user_id", NewConversationHandler(conversationService).List)
	api.GET("/stats/:user_id", NewStatsHandler(statsService).Daily)
	api.POST("/create_user", NewUserHandler(userService).Create)
	api.GET("/quota/:user_id", NewQuotaHandler(quotaService).GetQuota)
	api.GET("/models", NewModelsHandler(responder).List)
	api.GET("/ws", NewWebSocketHandler(hub, userService, nil).Handle)

	tc := &testContext{
		DB:     db,
		Router: router,
		OpenAI: openai,
		Hub:    hub,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return tc, cleanup
}

func (tc *testContext) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	tc.Router.ServeHTTP(w, req)
	return w
}

func (tc *testContext) doRaw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	tc.Router.ServeHTTP(w, req)
	return w
}

// decode 解析统一响应，data 解到 out（可为 nil）
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) response.Response {
	t.Helper()

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())

	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return response.Response{Code: envelope.Code, Message: envelope.Message}
}

