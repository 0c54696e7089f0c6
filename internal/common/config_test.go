package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "businesscards.sqlite", cfg.Database.DSN)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "./uploads", cfg.Upload.Dir)
	require.Equal(t, "https://vision.googleapis.com/v1/images:annotate", cfg.OCR.Endpoint)
	require.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	require.Equal(t, float32(0), cfg.LLM.Temperature)
	require.Equal(t, 500, cfg.LLM.MaxTokens)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/cards")
	t.Setenv("OPENAI_MAX_TOKENS", "800")
	t.Setenv("VISION_TIMEOUT", "10s")

	cfg := LoadConfig()
	require.Equal(t, "postgres://u:p@localhost:5432/cards", cfg.Database.DSN)
	require.Equal(t, 800, cfg.LLM.MaxTokens)
	require.Equal(t, 10*time.Second, cfg.OCR.Timeout)
}

func TestValidateRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_VISION_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := LoadConfig()
	require.Error(t, cfg.Validate())

	t.Setenv("GOOGLE_VISION_API_KEY", "vk")
	t.Setenv("OPENAI_API_KEY", "ok")
	cfg = LoadConfig()
	require.NoError(t, cfg.Validate())
}
