package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/pkg/llm"
	"github.com/qs3c/mood_chat_server/internal/pkg/response"
)

type ModelsHandler struct {
	responder *llm.Responder
}

func NewModelsHandler(responder *llm.Responder) *ModelsHandler {
	return &ModelsHandler{responder: responder}
}

// List 获取可选的模型后端
// GET /api/models
func (h *ModelsHandler) List(c *gin.Context) {
	models := make([]map[string]interface{}, len(model.Providers))

	for i, p := range model.Providers {
		models[i] = map[string]interface{}{
			"name":      p,
			"available": h.responder.Available(p),
			"default":   p == h.responder.DefaultProvider(),
		}
	}

	response.Success(c, gin.H{
		"models":  models,
		"default": h.responder.DefaultProvider(),
	})
}
