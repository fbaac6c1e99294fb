package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Message  MessageConfig  `mapstructure:"message"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	Mode                   string `mapstructure:"mode"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres | mysql | sqlite
	URL          string `mapstructure:"url"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Enabled Redis 是可选依赖，未配置 host 时不推送实时事件
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

type LLMConfig struct {
	DefaultProvider string         `mapstructure:"default_provider"`
	TimeoutSeconds  int            `mapstructure:"timeout_seconds"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	Gemini          ProviderConfig `mapstructure:"gemini"`
}

// Timeout 单次模型调用的超时时间
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ProviderConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

type QuotaConfig struct {
	WindowHours      int `mapstructure:"window_hours"`
	FreeMessageLimit int `mapstructure:"free_message_limit"`
}

// Window 免费额度的滑动统计窗口
func (c QuotaConfig) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

type StatsConfig struct {
	DefaultDays int    `mapstructure:"default_days"`
	MaxDays     int    `mapstructure:"max_days"`
	Timezone    string `mapstructure:"timezone"`
}

// Location 按日聚合使用的时区
func (c StatsConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type MessageConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// Default 返回带默认值的配置，测试和 Load 共用
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   5000,
			Mode:                   "debug",
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Driver:       "postgres",
			MaxIdleConns: 5,
			MaxOpenConns: 20,
		},
		Redis: RedisConfig{
			Port:     6379,
			PoolSize: 10,
		},
		LLM: LLMConfig{
			DefaultProvider: "openai",
			TimeoutSeconds:  30,
			OpenAI: ProviderConfig{
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-3.5-turbo",
			},
			Gemini: ProviderConfig{
				Model: "gemini-1.5-flash",
			},
		},
		Quota: QuotaConfig{
			WindowHours:      4,
			FreeMessageLimit: 20,
		},
		Stats: StatsConfig{
			DefaultDays: 30,
			MaxDays:     365,
			Timezone:    "UTC",
		},
		Message: MessageConfig{
			MaxLength: 4000,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		},
	}
}

func Load(configPath string) (*Config, error) {
	// .env 只用于本地开发，不存在时忽略
	_ = godotenv.Load(".env")

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("llm.openai.api_key", "LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", "LLM_GEMINI_API_KEY", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时完全依赖默认值和环境变量
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.shutdown_timeout_seconds", d.Server.ShutdownTimeoutSeconds)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)

	v.SetDefault("redis.host", d.Redis.Host)
	v.SetDefault("redis.port", d.Redis.Port)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.pool_size", d.Redis.PoolSize)

	v.SetDefault("llm.default_provider", d.LLM.DefaultProvider)
	v.SetDefault("llm.timeout_seconds", d.LLM.TimeoutSeconds)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.base_url", d.LLM.OpenAI.BaseURL)
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.endpoint", d.LLM.Gemini.Endpoint)
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)

	v.SetDefault("quota.window_hours", d.Quota.WindowHours)
	v.SetDefault("quota.free_message_limit", d.Quota.FreeMessageLimit)

	v.SetDefault("stats.default_days", d.Stats.DefaultDays)
	v.SetDefault("stats.max_days", d.Stats.MaxDays)
	v.SetDefault("stats.timezone", d.Stats.Timezone)

	v.SetDefault("message.max_length", d.Message.MaxLength)

	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", d.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", d.CORS.AllowedHeaders)
}

// Validate 启动前校验，数据库连接串缺失直接失败
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Quota.WindowHours <= 0 {
		return errors.New("quota.window_hours must be positive")
	}
	if c.Quota.FreeMessageLimit <= 0 {
		return errors.New("quota.free_message_limit must be positive")
	}
	if c.Stats.DefaultDays <= 0 {
		return errors.New("stats.default_days must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.LLM.DefaultProvider)) {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported llm.default_provider %q", c.LLM.DefaultProvider)
	}
	if _, err := c.Stats.Location(); err != nil {
		return fmt.Errorf("invalid stats.timezone: %w", err)
	}
	return nil
}
