package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	// unsetEnv clears a variable for the duration of the test; a set but
	// empty variable would bypass envconfig defaults.
	unsetEnv := func(t *testing.T, keys ...string) {
		t.Helper()
		for _, key := range keys {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		unsetEnv(t, "PLANNER_ENDPOINT", "FAILURE_MODE", "FALLBACK_DELAY", "GEMINI_MODELS", "WEB_ADDR", "ALLOWED_ORIGINS")

		cfg, err := NewFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "", cfg.PlannerEndpoint)
		assert.Equal(t, ModeFallback, cfg.FailureMode)
		assert.Equal(t, 1500*time.Millisecond, cfg.FallbackDelay)
		assert.Equal(t, []string{"gemini-2.0-flash-exp", "gemini-2.0-flash"}, cfg.GeminiModels)
		assert.Equal(t, ":3000", cfg.WebAddr)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("PLANNER_ENDPOINT", "http://planner.test/generate-trip-plan")
		t.Setenv("FAILURE_MODE", "alert")
		t.Setenv("FALLBACK_DELAY", "250ms")
		t.Setenv("TELEGRAM_ALLOW_USER_IDS", "12,34")

		cfg, err := NewFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "http://planner.test/generate-trip-plan", cfg.PlannerEndpoint)
		assert.Equal(t, ModeAlert, cfg.FailureMode)
		assert.Equal(t, 250*time.Millisecond, cfg.FallbackDelay)
		assert.Equal(t, []int64{12, 34}, cfg.TelegramAllowedUserIDs)
	})

	t.Run("UnknownFailureMode", func(t *testing.T) {
		unsetEnv(t, "FALLBACK_DELAY")
		t.Setenv("FAILURE_MODE", "retry")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FAILURE_MODE")
	})

	t.Run("NegativeDelay", func(t *testing.T) {
		t.Setenv("FAILURE_MODE", "fallback")
		t.Setenv("FALLBACK_DELAY", "-1s")

		_, err := NewFromEnv()
		assert.Error(t, err)
	})
}

func TestRequireService(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireService()
	require.Error(t, err)
	assert.Equal(t, "GOOGLE_API_KEY or GROQ_API_KEY environment variable not set", err.Error())

	cfg.GroqAPIKey = "groq_key"
	assert.NoError(t, cfg.RequireService())
}

func TestRequireTelegram(t *testing.T) {
	cfg := &Config{TelegramBotToken: "token"}
	assert.EqualError(t, cfg.RequireTelegram(), "TELEGRAM_WEBHOOK_URL environment variable not set")

	cfg.TelegramWebhookURL = "https://bot.test/webhook"
	assert.NoError(t, cfg.RequireTelegram())
}
