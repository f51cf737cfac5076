package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "roomshare", cfg.Auth.Issuer)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.MessageWindow)
	assert.Equal(t, 10, cfg.RateLimit.MessageLimit)
	assert.Equal(t, 3*time.Second, cfg.Moderation.Timeout)
	assert.True(t, cfg.Mailer.TestMode, "non-production defaults to mailer test mode")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("RATE_LIMIT_MESSAGE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_MESSAGE_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 5, cfg.RateLimit.MessageLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.MessageWindow)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Mailer.TestMode, "production defaults to real delivery")
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_MESSAGE_WINDOW", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.MessageWindow)
}

func TestValidate(t *testing.T) {
	t.Run("message limit below one is rejected", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_MESSAGE_LIMIT", "0")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("test mode with api key requires owner address", func(t *testing.T) {
		t.Setenv("MAILER_API_KEY", "re_123")
		t.Setenv("MAILER_TEST_MODE", "true")
		t.Setenv("MAILER_OWNER_ADDRESS", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("test mode with owner address passes", func(t *testing.T) {
		t.Setenv("MAILER_API_KEY", "re_123")
		t.Setenv("MAILER_TEST_MODE", "true")
		t.Setenv("MAILER_OWNER_ADDRESS", "owner@example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", cfg.Mailer.OwnerAddress)
	})
}
