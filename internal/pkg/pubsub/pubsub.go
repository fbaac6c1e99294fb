package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/qs3c/mood_chat_server/internal/model/dto"
)

const (
	ChannelConversationTurns = "conversation_turns"

	EventTurnRecorded = "turn_recorded"
)

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishTurn 发布一轮已落库的对话
func (p *Publisher) PublishTurn(ctx context.Context, userID int64, conv *dto.ConversationInfo) error {
	event := &dto.TurnEvent{
		Type:         EventTurnRecorded,
		UserID:       userID,
		Conversation: conv,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal turn event: %w", err)
	}

	return p.client.Publish(ctx, ChannelConversationTurns, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅对话事件，阻塞到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*dto.TurnEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelConversationTurns)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event dto.TurnEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
