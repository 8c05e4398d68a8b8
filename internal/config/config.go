package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// FailureMode selects what happens when the planning service cannot be
// reached.
type FailureMode string

const (
	// ModeFallback renders a locally synthesized itinerary.
	ModeFallback FailureMode = "fallback"
	// ModeAlert shows a connectivity alert and nothing else.
	ModeAlert FailureMode = "alert"
)

// Config holds the configuration for the application.
type Config struct {
	// Form / orchestrator
	PlannerEndpoint string        `envconfig:"PLANNER_ENDPOINT"`
	FailureMode     FailureMode   `envconfig:"FAILURE_MODE" default:"fallback"`
	FallbackDelay   time.Duration `envconfig:"FALLBACK_DELAY" default:"1500ms"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	WebAddr         string        `envconfig:"WEB_ADDR" default:":3000"`

	// Planning service
	ServiceAddr    string   `envconfig:"SERVICE_ADDR" default:":8000"`
	GoogleAPIKey   string   `envconfig:"GOOGLE_API_KEY"`
	GeminiModels   []string `envconfig:"GEMINI_MODELS" default:"gemini-2.0-flash-exp,gemini-2.0-flash"`
	GroqAPIKey     string   `envconfig:"GROQ_API_KEY"`
	GroqModel      string   `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	// Telegram Config
	TelegramBotToken       string  `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookURL     string  `envconfig:"TELEGRAM_WEBHOOK_URL"`
	TelegramAllowedUserIDs []int64 `envconfig:"TELEGRAM_ALLOW_USER_IDS"`
	TelegramAddr           string  `envconfig:"TELEGRAM_ADDR" default:":8080"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.FailureMode {
	case ModeFallback, ModeAlert:
	default:
		return nil, fmt.Errorf("FAILURE_MODE must be %q or %q, got %q", ModeFallback, ModeAlert, cfg.FailureMode)
	}

	if cfg.FallbackDelay < 0 {
		return nil, fmt.Errorf("FALLBACK_DELAY must not be negative")
	}

	return &cfg, nil
}

// RequireService checks the settings the planning service cannot run without.
func (c *Config) RequireService() error {
	if c.GoogleAPIKey == "" && c.GroqAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY or GROQ_API_KEY environment variable not set")
	}
	return nil
}

// RequireTelegram checks the settings the Telegram front-end needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}
