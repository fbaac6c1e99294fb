package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qs3c/mood_chat_server/internal/model"
)

type fakeClient struct {
	out   string
	err   error
	delay time.Duration
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.out, f.err
}

func TestResponder_Respond(t *testing.T) {
	openai := &fakeClient{out: `{"response":"from openai","mood":"happy"}`}
	gemini := &fakeClient{out: `{"response":"from gemini","mood":"sad"}`}
	r := NewResponder(openai, gemini, model.ProviderOpenAI, time.Second)

	reply := r.Respond(context.Background(), "hi", model.ProviderGemini)
	assert.Equal(t, "from gemini", reply.Reply)
	assert.Equal(t, model.MoodSad, reply.Mood)
	assert.Equal(t, 0, openai.calls)
	assert.Equal(t, 1, gemini.calls)

	reply = r.Respond(context.Background(), "hi", model.ProviderOpenAI)
	assert.Equal(t, "from openai", reply.Reply)
	assert.Equal(t, model.MoodHappy, reply.Mood)
}

func TestResponder_Respond_UnknownProviderUsesDefault(t *testing.T) {
	openai := &fakeClient{out: `{"response":"from openai","mood":"happy"}`}
	gemini := &fakeClient{out: `{"response":"from gemini","mood":"sad"}`}
	r := NewResponder(openai, gemini, model.ProviderGemini, time.Second)

	reply := r.Respond(context.Background(), "hi", model.Provider("claude"))
	assert.Equal(t, "from gemini", reply.Reply)

	reply = r.Respond(context.Background(), "hi", "")
	assert.Equal(t, "from gemini", reply.Reply)
	assert.Equal(t, 0, openai.calls)
}

func TestResponder_Respond_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		client Client
	}{
		{"transport error", &fakeClient{err: errors.New("connection refused")}},
		{"malformed output", &fakeClient{out: "not json"}},
		{"missing mood", &fakeClient{out: `{"response":"hello"}`}},
		{"off-list mood", &fakeClient{out: `{"response":"hello","mood":"elated"}`}},
		{"not configured", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResponder(tt.client, nil, model.ProviderOpenAI, time.Second)

			reply := r.Respond(context.Background(), "hi", model.ProviderOpenAI)
			assert.Equal(t, FallbackReply, reply.Reply)
			assert.Equal(t, model.MoodUnknown, reply.Mood)
		})
	}
}

func TestResponder_Respond_Timeout(t *testing.T) {
	slow := &fakeClient{out: `{"response":"late","mood":"happy"}`, delay: time.Second}
	r := NewResponder(slow, nil, model.ProviderOpenAI, 20*time.Millisecond)

	start := time.Now()
	reply := r.Respond(context.Background(), "hi", model.ProviderOpenAI)

	assert.Equal(t, Fallback(), reply)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestResponder_Available(t *testing.T) {
	r := NewResponder(&fakeClient{}, nil, model.ProviderOpenAI, time.Second)

	assert.True(t, r.Available(model.ProviderOpenAI))
	assert.False(t, r.Available(model.ProviderGemini))
	assert.Equal(t, model.ProviderOpenAI, r.DefaultProvider())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("boom")
	err := &ProviderError{Provider: model.ProviderGemini, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gemini")
}
