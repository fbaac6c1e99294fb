package model

import (
	"time"
)

// Conversation 一轮对话：用户消息、机器人回复和情绪标签，写入后不再修改
type Conversation struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index:idx_conversations_user_created,priority:1" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	UserMessage string    `gorm:"type:text;not null" json:"user_message"`
	BotResponse string    `gorm:"type:text;not null" json:"bot_response"`
	UserMood    Mood      `gorm:"size:20;not null" json:"user_mood"`
	CreatedAt   time.Time `gorm:"index:idx_conversations_user_created,priority:2" json:"created_at"`
}

func (Conversation) TableName() string {
	return "conversations"
}
