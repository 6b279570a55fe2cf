package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "traffic_ai")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30, cfg.TokenTTLMinutes)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 30, cfg.AITimeoutSeconds)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_OpenAIProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1/")
	t.Setenv("OPENAI_MODEL", "llama3.1:8b")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.AIProvider)
	assert.Equal(t, "http://localhost:11434/v1/", cfg.OpenAIBaseURL)
}

func TestLoadConfig_OpenAIProviderMissingSettings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_MODEL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_BASE_URL")
	assert.Contains(t, err.Error(), "OPENAI_MODEL")
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "watson")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL_MINUTES", "not-a-number")
	t.Setenv("HISTORY_LIMIT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TokenTTLMinutes)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.example.com",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "traffic_ai",
		DBSSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.example.com port=5433 user=app password=pw dbname=traffic_ai sslmode=require",
		cfg.GetDSN())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "redis.example.com", RedisPort: "6380"}
	assert.Equal(t, "redis.example.com:6380", cfg.GetRedisAddr())
}
