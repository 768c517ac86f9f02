package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 40*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "ollama", cfg.LLM.Provider)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9100"
session:
  backend: redis
  ttl_seconds: 600
llm:
  provider: openai
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gemma2:2b", cfg.LLM.Ollama.Model)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a map"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "error parsing YAML")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("USE_LOCAL_RESPONDER", "true")
	t.Setenv("OLLAMA_MODEL", "llama3:8b")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "redis://cache:6379", cfg.Session.RedisURL)
	assert.Equal(t, "redis", cfg.Session.Backend, "REDIS_URL implies the redis backend")
	assert.True(t, cfg.LLM.ForceLocal)
	assert.Equal(t, "llama3:8b", cfg.LLM.Ollama.Model)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestExplicitBackendWinsOverRedisURL(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("REDIS_URL", "redis://cache:6379")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestPromptVersionPinning(t *testing.T) {
	p := PromptsConfig{
		DefaultVersion: "v1.0",
		Versions:       map[string]string{"qna": "v2.0"},
	}
	assert.Equal(t, "v2.0", p.Version("qna"))
	assert.Equal(t, "v1.0", p.Version("compliance"))
}
