package dto

// CreateMessageRequest 发送消息请求
type CreateMessageRequest struct {
	UserID  int64  `json:"user_id" binding:"required,gt=0"`
	Content string `json:"content" binding:"required"`
	Model   string `json:"model,omitempty"`
}

// ConversationInfo 一轮对话（返回给前端）
type ConversationInfo struct {
	ID          int64  `json:"id"`
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
	UserMood    string `json:"user_mood"`
	CreatedAt   string `json:"created_at"`
}

// CreateMessageResponse 发送消息响应
type CreateMessageResponse struct {
	Conversation *ConversationInfo `json:"conversation"`
}

// TurnEvent 新对话落库后推送给在线客户端的事件
type TurnEvent struct {
	Type         string            `json:"type"`
	UserID       int64             `json:"user_id"`
	Conversation *ConversationInfo `json:"conversation"`
}
