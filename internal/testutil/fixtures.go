package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/mood_chat_server/internal/model"
)

var fixtureSeq atomic.Int64

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := fixtureSeq.Add(1)
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", n),
		Email:        fmt.Sprintf("test_%d@example.com", n),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		IsPremium:    false,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithPremium 设置为付费用户
func WithPremium() func(*model.User) {
	return func(u *model.User) {
		u.IsPremium = true
	}
}

// TestConversation 创建一轮测试对话
func TestConversation(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Conversation)) *model.Conversation {
	t.Helper()

	conv := &model.Conversation{
		UserID:      userID,
		UserMessage: fmt.Sprintf("message %d", fixtureSeq.Add(1)),
		BotResponse: "I hear you.",
		UserMood:    model.MoodNeutral,
	}

	for _, opt := range opts {
		opt(conv)
	}

	if err := db.Create(conv).Error; err != nil {
		t.Fatalf("Failed to create test conversation: %v", err)
	}

	return conv
}

// TestConversations 批量创建 n 轮对话
func TestConversations(t *testing.T, db *gorm.DB, userID int64, n int, opts ...func(*model.Conversation)) {
	t.Helper()

	for i := 0; i < n; i++ {
		TestConversation(t, db, userID, opts...)
	}
}

// WithMood 设置情绪
func WithMood(mood model.Mood) func(*model.Conversation) {
	return func(c *model.Conversation) {
		c.UserMood = mood
	}
}

// WithMessage 设置用户消息
func WithMessage(message string) func(*model.Conversation) {
	return func(c *model.Conversation) {
		c.UserMessage = message
	}
}

// WithCreatedAt 设置创建时间（统一转为 UTC）
func WithCreatedAt(at time.Time) func(*model.Conversation) {
	return func(c *model.Conversation) {
		c.CreatedAt = at.UTC()
	}
}
