package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/chat")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/chat", cfg.Database.URL)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, 4, cfg.Quota.WindowHours)
	assert.Equal(t, 20, cfg.Quota.FreeMessageLimit)
	assert.Equal(t, 30, cfg.Stats.DefaultDays)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: sqlite
  url: "file::memory:"
quota:
  window_hours: 2
  free_message_limit: 5
llm:
  default_provider: gemini
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 2, cfg.Quota.WindowHours)
	assert.Equal(t, 5, cfg.Quota.FreeMessageLimit)
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 2*time.Hour, cfg.Quota.Window())
}

func TestLoad_PrefersLocalConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("quota:\n  free_message_limit: 7\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yaml"), []byte("quota:\n  free_message_limit: 9\n"), 0o644))

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Quota.FreeMessageLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing database url", func(c *Config) { c.Database.URL = "" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"zero window", func(c *Config) { c.Quota.WindowHours = 0 }, true},
		{"zero limit", func(c *Config) { c.Quota.FreeMessageLimit = 0 }, true},
		{"unknown provider", func(c *Config) { c.LLM.DefaultProvider = "claude" }, true},
		{"bad timezone", func(c *Config) { c.Stats.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.URL = "postgres://localhost/chat"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLLMConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, LLMConfig{}.Timeout())
	assert.Equal(t, 5*time.Second, LLMConfig{TimeoutSeconds: 5}.Timeout())
}
