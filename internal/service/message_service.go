package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/pkg/llm"
	"github.com/qs3c/mood_chat_server/internal/pkg/pubsub"
	"github.com/qs3c/mood_chat_server/internal/repository"
)

// MessageService 处理一条用户消息：配额检查、生成回复、落库
type MessageService struct {
	quotaService *QuotaService
	responder    *llm.Responder
	convRepo     *repository.ConversationRepository
	publisher    *pubsub.Publisher
	cfg          *config.Config
}

// NewMessageService publisher 为 nil 时不推送实时事件
func NewMessageService(
	quotaService *QuotaService,
	responder *llm.Responder,
	convRepo *repository.ConversationRepository,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *MessageService {
	return &MessageService{
		quotaService: quotaService,
		responder:    responder,
		convRepo:     convRepo,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// Send 发送消息，返回已落库的一轮对话
func (s *MessageService) Send(ctx context.Context, req *dto.CreateMessageRequest) (*dto.ConversationInfo, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	allowed, err := s.quotaService.MaySend(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrQuotaExceeded
	}

	provider := model.ResolveProvider(req.Model, s.responder.DefaultProvider())
	reply := s.responder.Respond(ctx, req.Content, provider)

	conv := &model.Conversation{
		UserID:      req.UserID,
		UserMessage: req.Content,
		BotResponse: reply.Reply,
		UserMood:    reply.Mood,
	}

	// 模型已经回复，客户端断开也要把这一轮写完
	if err := s.convRepo.Record(context.WithoutCancel(ctx), conv); err != nil {
		return nil, fmt.Errorf("%w: record conversation: %v", ErrStorage, err)
	}

	info := toConversationInfo(conv)
	s.publish(ctx, req.UserID, info)

	return info, nil
}

func (s *MessageService) validate(req *dto.CreateMessageRequest) error {
	if req == nil || req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be a positive integer", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	if limit := s.cfg.Message.MaxLength; limit > 0 && utf8.RuneCountInString(req.Content) > limit {
		return fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, limit)
	}
	return nil
}

func (s *MessageService) publish(ctx context.Context, userID int64, info *dto.ConversationInfo) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTurn(context.WithoutCancel(ctx), userID, info); err != nil {
		log.Printf("Failed to publish turn for user %d: %v", userID, err)
	}
}
