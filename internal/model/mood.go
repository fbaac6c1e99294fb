package model

import "strings"

// Mood 用户情绪标签，由模型在每轮对话中给出
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodAngry    Mood = "angry"
	MoodNeutral  Mood = "neutral"
	MoodExcited  Mood = "excited"
	MoodConfused Mood = "confused"
	MoodStressed Mood = "stressed"

	// MoodUnknown 模型调用失败时的占位标签
	MoodUnknown Mood = "unknown"
)

// Moods 模型可以返回的情绪标签（不含 unknown）
var Moods = []Mood{
	MoodHappy,
	MoodSad,
	MoodAnxious,
	MoodAngry,
	MoodNeutral,
	MoodExcited,
	MoodConfused,
	MoodStressed,
}

// ParseMood 解析模型返回的情绪，大小写和首尾空白不敏感
func ParseMood(raw string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Moods {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Valid 可以落库的标签：八种情绪或 unknown
func (m Mood) Valid() bool {
	if m == MoodUnknown {
		return true
	}
	parsed, ok := ParseMood(string(m))
	return ok && parsed == m
}

func (m Mood) String() string {
	return string(m)
}
