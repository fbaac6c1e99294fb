package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		raw  string
		want Mood
		ok   bool
	}{
		{"happy", MoodHappy, true},
		{"  Sad ", MoodSad, true},
		{"STRESSED", MoodStressed, true},
		{"unknown", "", false},
		{"joyful", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMood(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestMood_Valid(t *testing.T) {
	for _, m := range Moods {
		assert.True(t, m.Valid(), "mood %s should be valid", m)
	}
	assert.True(t, MoodUnknown.Valid())
	assert.False(t, Mood("Happy").Valid())
	assert.False(t, Mood("").Valid())
	assert.False(t, Mood("bored").Valid())
}

func TestResolveProvider(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, ResolveProvider("openai", ProviderGemini))
	assert.Equal(t, ProviderGemini, ResolveProvider("Gemini", ProviderOpenAI))
	assert.Equal(t, ProviderOpenAI, ResolveProvider("", ProviderOpenAI))
	assert.Equal(t, ProviderOpenAI, ResolveProvider("unknown-value", ProviderOpenAI))
	assert.Equal(t, ProviderGemini, ResolveProvider("claude", ProviderGemini))
}
