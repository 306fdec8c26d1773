package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Memo keeper specifics
	Telegram   TelegramConfig
	Redis      RedisConfig
	Classifier ClassifierConfig
	Budget     BudgetConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	GroupIDs    []int64
	AdminChatID int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	Prefix   string
}

type ClassifierConfig struct {
	ConfidenceThreshold float64
	MaxMessageLength    int
	UseOpenAI           bool
	OpenAIAPIKey        string
	OpenAIModel         string
}

type BudgetConfig struct {
	Daily   float64
	Weekly  float64
	Monthly float64
}

type WebhookConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.AdminChatID = viper.GetInt64("telegram.admin_chat_id")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Split group ids since viper might not parse arrays seamlessly from env
	groupIDs, err := parseGroupIDs(viper.GetString("telegram.group_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid telegram.group_ids: %w", err)
	}
	cfg.Telegram.GroupIDs = groupIDs

	// Redis
	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.Stream = viper.GetString("redis.stream")
	cfg.Redis.Prefix = viper.GetString("redis.prefix")
	if redisAddr := viper.GetString("redis_addr"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}

	// Classifier
	cfg.Classifier.ConfidenceThreshold = viper.GetFloat64("classifier.confidence_threshold")
	cfg.Classifier.MaxMessageLength = viper.GetInt("classifier.max_message_length")
	cfg.Classifier.UseOpenAI = viper.GetBool("classifier.use_openai")
	cfg.Classifier.OpenAIAPIKey = viper.GetString("classifier.openai_api_key")
	cfg.Classifier.OpenAIModel = viper.GetString("classifier.openai_model")
	if apiKey := viper.GetString("openai_api_key"); apiKey != "" {
		cfg.Classifier.OpenAIAPIKey = apiKey
	}

	// Budgets
	cfg.Budget.Daily = viper.GetFloat64("budget.daily")
	cfg.Budget.Weekly = viper.GetFloat64("budget.weekly")
	cfg.Budget.Monthly = viper.GetFloat64("budget.monthly")

	// Webhooks
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if len(cfg.Telegram.GroupIDs) == 0 {
		return fmt.Errorf("telegram.group_ids is required")
	}
	if cfg.Classifier.UseOpenAI && cfg.Classifier.OpenAIAPIKey == "" {
		return fmt.Errorf("classifier.openai_api_key is required when classifier.use_openai is enabled")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.stream", "memo:events")
	viper.SetDefault("redis.prefix", "openai:cost")

	viper.SetDefault("classifier.confidence_threshold", 0.7)
	viper.SetDefault("classifier.max_message_length", 2000)
	viper.SetDefault("classifier.use_openai", false)
	viper.SetDefault("classifier.openai_model", "gpt-4o-mini")

	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

func parseGroupIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
