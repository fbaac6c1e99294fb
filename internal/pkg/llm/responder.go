package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/mood_chat_server/internal/model"
)

var errNotConfigured = errors.New("provider is not configured")

// ProviderError 某个后端的调用失败
type ProviderError struct {
	Provider model.Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Responder 按后端分发请求，任何失败都降级为固定回复
type Responder struct {
	openai          Client
	gemini          Client
	defaultProvider model.Provider
	timeout         time.Duration
}

// NewResponder openai 或 gemini 可以为 nil，表示该后端未配置
func NewResponder(openai, gemini Client, defaultProvider model.Provider, timeout time.Duration) *Responder {
	if defaultProvider == "" {
		defaultProvider = model.ProviderOpenAI
	}
	return &Responder{
		openai:          openai,
		gemini:          gemini,
		defaultProvider: defaultProvider,
		timeout:         timeout,
	}
}

// DefaultProvider 未指定后端时使用的后端
func (r *Responder) DefaultProvider() model.Provider {
	return r.defaultProvider
}

// Available 后端是否已配置
func (r *Responder) Available(provider model.Provider) bool {
	return r.clientFor(provider) != nil
}

// Respond 生成回复和情绪，从不返回错误
func (r *Responder) Respond(ctx context.Context, message string, provider model.Provider) MoodReply {
	provider = model.ResolveProvider(string(provider), r.defaultProvider)

	reply, err := r.respond(ctx, message, provider)
	if err != nil {
		log.Printf("llm: %v, using fallback reply", &ProviderError{Provider: provider, Err: err})
		return Fallback()
	}
	return reply
}

func (r *Responder) respond(ctx context.Context, message string, provider model.Provider) (MoodReply, error) {
	client := r.clientFor(provider)
	if client == nil {
		return MoodReply{}, errNotConfigured
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := client.Complete(ctx, SystemPrompt, message)
	if err != nil {
		return MoodReply{}, err
	}
	return DecodeMoodReply(raw)
}

func (r *Responder) clientFor(provider model.Provider) Client {
	switch provider {
	case model.ProviderOpenAI:
		return r.openai
	case model.ProviderGemini:
		return r.gemini
	default:
		return nil
	}
}
