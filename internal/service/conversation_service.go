package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/repository"
)

type ConversationService struct {
	convRepo *repository.ConversationRepository
}

func NewConversationService(convRepo *repository.ConversationRepository) *ConversationService {
	return &ConversationService{convRepo: convRepo}
}

// List 用户的全部对话，最新的在前；用户不存在时返回空列表
func (s *ConversationService) List(ctx context.Context, userID int64) ([]dto.ConversationInfo, error) {
	convs, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations: %v", ErrStorage, err)
	}

	items := make([]dto.ConversationInfo, len(convs))
	for i, conv := range convs {
		items[i] = *toConversationInfo(conv)
	}
	return items, nil
}

func toConversationInfo(conv *model.Conversation) *dto.ConversationInfo {
	return &dto.ConversationInfo{
		ID:          conv.ID,
		UserMessage: conv.UserMessage,
		BotResponse: conv.BotResponse,
		UserMood:    conv.UserMood.String(),
		CreatedAt:   conv.CreatedAt.UTC().Format(time.RFC3339),
	}
}
