package dto

// DailyStat 某一天的消息数和出现过的情绪
type DailyStat struct {
	Date         string   `json:"date"`
	MessageCount int      `json:"message_count"`
	Moods        []string `json:"moods"`
}

// QuotaInfo 免费额度使用情况
type QuotaInfo struct {
	IsPremium   bool `json:"is_premium"`
	Limit       int  `json:"limit"`
	Used        int  `json:"used"`
	Remaining   int  `json:"remaining"`
	WindowHours int  `json:"window_hours"`
	Unlimited   bool `json:"unlimited"`
}
