package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qs3c/mood_chat_server/internal/model"
)

type moodPayload struct {
	Response *string `json:"response"`
	Mood     *string `json:"mood"`
}

// DecodeMoodReply 解析模型输出的 {"response": ..., "mood": ...}
// 字段缺失、为空或情绪不在枚举内都视为失败
func DecodeMoodReply(raw string) (MoodReply, error) {
	content := cleanJSONContent(raw)
	if content == "" {
		return MoodReply{}, errors.New("empty model output")
	}

	var payload moodPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return MoodReply{}, fmt.Errorf("decode model output: %w", err)
	}

	if payload.Response == nil || strings.TrimSpace(*payload.Response) == "" {
		return MoodReply{}, errors.New("model output missing response")
	}
	if payload.Mood == nil || strings.TrimSpace(*payload.Mood) == "" {
		return MoodReply{}, errors.New("model output missing mood")
	}

	mood, ok := model.ParseMood(*payload.Mood)
	if !ok {
		return MoodReply{}, fmt.Errorf("model output has unknown mood %q", *payload.Mood)
	}

	return MoodReply{
		Reply: *payload.Response,
		Mood:  mood,
	}, nil
}

// cleanJSONContent 去掉 markdown 代码块，截取最外层的 JSON 对象
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
