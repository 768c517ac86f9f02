package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded once at startup and
// passed into the components that need it.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	LLM     LLMConfig     `yaml:"llm"`
	Prompts PromptsConfig `yaml:"prompts"`
	Logging LogConfig     `yaml:"logging"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// SessionConfig selects the session backend and its TTL.
type SessionConfig struct {
	Backend    string `yaml:"backend"` // "memory" or "redis"
	RedisURL   string `yaml:"redis_url"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the configured session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}

// LLMConfig selects the generative backend tier. ForceLocal bypasses any
// live backend and runs on the deterministic responder alone.
type LLMConfig struct {
	Provider   string       `yaml:"provider"` // "ollama" or "openai"
	ForceLocal bool         `yaml:"force_local"`
	Ollama     OllamaConfig `yaml:"ollama"`
	OpenAI     OpenAIConfig `yaml:"openai"`
}

// OllamaConfig configures the local backend tier. The lighter model gets
// the shorter time budget.
type OllamaConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Temperature    float32 `yaml:"temperature"`
}

// OpenAIConfig configures the remote backend tier.
type OpenAIConfig struct {
	APIKey         string  `yaml:"-"` // environment only, never from file
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Temperature    float32 `yaml:"temperature"`
}

// PromptsConfig pins a prompt version per pipeline module.
type PromptsConfig struct {
	Dir            string            `yaml:"dir"`
	DefaultVersion string            `yaml:"default_version"`
	Versions       map[string]string `yaml:"versions"`
}

// Version returns the pinned prompt version for a module.
func (p PromptsConfig) Version(module string) string {
	if v, ok := p.Versions[module]; ok {
		return v
	}
	return p.DefaultVersion
}

// LogConfig configures the zerolog setup.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "console" or "json"
	Output     string `yaml:"output"` // "stdout", "stderr", or "file"
	FilePath   string `yaml:"file_path"`
	TimeFormat string `yaml:"time_format"`
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Session: SessionConfig{
			Backend:    "memory",
			RedisURL:   "redis://localhost:6379",
			TTLSeconds: 2400, // 40 minutes
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Ollama: OllamaConfig{
				BaseURL:        "http://127.0.0.1:11434",
				Model:          "gemma2:2b",
				TimeoutSeconds: 30,
				Temperature:    0.2,
			},
			OpenAI: OpenAIConfig{
				BaseURL:        "https://openrouter.ai/api/v1",
				Model:          "openai/gpt-3.5-turbo",
				MaxTokens:      1500,
				TimeoutSeconds: 60,
				Temperature:    0.2,
			},
		},
		Prompts: PromptsConfig{
			Dir:            "prompts",
			DefaultVersion: "v1.0",
			Versions: map[string]string{
				"orchestrator":      "v1.0",
				"clinical_analysis": "v1.0",
				"risk_assessment":   "v1.0",
				"qna":               "v1.0",
				"compliance":        "v1.0",
			},
		},
		Logging: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "rfc3339",
		},
	}
}

// Load reads the YAML config file at path (optional) and applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SESSION_BACKEND"); v != "" {
		c.Session.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Session.RedisURL = v
		if os.Getenv("SESSION_BACKEND") == "" {
			c.Session.Backend = "redis"
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if envBool("USE_LOCAL_RESPONDER") || envBool("USE_MOCK_LLM") {
		c.LLM.ForceLocal = true
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.LLM.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.LLM.Ollama.Model = v
	}
	c.LLM.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if c.LLM.OpenAI.APIKey == "" {
		c.LLM.OpenAI.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func envBool(name string) bool {
	return strings.ToLower(os.Getenv(name)) == "true"
}
