package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// HTTP server
	HTTPPort   int           `env:"HTTP_PORT" envDefault:"8080"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Authentication. Password is stored as a sha256 hex digest;
	// regenerate with: echo -n <password> | sha256sum
	AuthUsername       string `env:"AUTH_USERNAME" envDefault:"admin"`
	AuthPasswordSHA256 string `env:"AUTH_PASSWORD_SHA256" envDefault:"240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Rewriting
	RewriteLanguage string        `env:"REWRITE_LANGUAGE" envDefault:"Hindi"`
	RewriteTimeout  time.Duration `env:"REWRITE_TIMEOUT" envDefault:"60s"`

	// Storage
	HistoryFilePath string `env:"HISTORY_FILE_PATH" envDefault:"data/user_history.json"`
	StatsFilePath   string `env:"STATS_FILE_PATH" envDefault:"data/usage_stats.json"`

	// Daily usage report schedule (cron spec, empty disables)
	DailyReportCron string `env:"DAILY_REPORT_CRON" envDefault:"0 21 * * *"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
