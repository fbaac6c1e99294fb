package llm

import (
	"context"

	"github.com/qs3c/mood_chat_server/internal/model"
)

// SystemPrompt 所有后端共用的系统提示词
const SystemPrompt = `You are a mental health support chatbot.
Your responses should be empathetic, supportive, and helpful.
After each response, analyze the user's message and provide their mood in a single word.
Format your response as JSON with 'response' and 'mood' fields.
The mood should be one of: happy, sad, anxious, angry, neutral, excited, confused, or stressed.`

// FallbackReply 后端不可用时返回给用户的固定回复
const FallbackReply = "I apologize, but I'm having trouble processing your message right now. Please try again later."

// Client 大模型后端，返回模型输出的原始文本
type Client interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// MoodReply 一轮回复和识别出的情绪
type MoodReply struct {
	Reply string
	Mood  model.Mood
}

// Fallback 降级回复
func Fallback() MoodReply {
	return MoodReply{
		Reply: FallbackReply,
		Mood:  model.MoodUnknown,
	}
}
