package model

import "strings"

// Provider 大模型后端
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Providers 支持的全部后端
var Providers = []Provider{ProviderOpenAI, ProviderGemini}

// ResolveProvider 把请求中的 model 字段映射为后端，空值或无法识别时使用 def
func ResolveProvider(raw string, def Provider) Provider {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case ProviderOpenAI:
		return ProviderOpenAI
	case ProviderGemini:
		return ProviderGemini
	default:
		return def
	}
}
