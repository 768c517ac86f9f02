package llm

import (
	"context"
	"fmt"
	"time"

	einoollama "github.com/cloudwego/eino-ext/components/model/ollama"
	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/config"
)

// NewBackend builds the primary chat backend for the configured provider
// and returns it with that tier's time budget. A nil backend means the
// gateway runs on the local responder alone, either because the operator
// forced it or because no provider could be initialized; backend
// unavailability is never fatal to the service.
func NewBackend(ctx context.Context, cfg config.LLMConfig, log zerolog.Logger) (ChatModel, time.Duration) {
	if cfg.ForceLocal {
		log.Info().Msg("local responder forced, no live backend configured")
		return nil, 0
	}

	switch cfg.Provider {
	case "openai":
		backend, err := newOpenAIBackend(ctx, cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize openai backend, using local responder")
			return nil, 0
		}
		log.Info().Str("model", cfg.OpenAI.Model).Msg("using openai backend")
		return backend, time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second

	case "ollama", "":
		backend, err := newOllamaBackend(ctx, cfg.Ollama)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize ollama backend, using local responder")
			return nil, 0
		}
		log.Info().Str("model", cfg.Ollama.Model).Msg("using ollama backend")
		return backend, time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second

	default:
		log.Warn().Str("provider", cfg.Provider).Msg("unknown llm provider, using local responder")
		return nil, 0
	}
}

func newOllamaBackend(ctx context.Context, cfg config.OllamaConfig) (ChatModel, error) {
	model, err := einoollama.NewChatModel(ctx, &einoollama.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Options: &api.Options{
			Temperature: cfg.Temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating ollama chat model: %w", err)
	}
	return model, nil
}

func newOpenAIBackend(ctx context.Context, cfg config.OpenAIConfig) (ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	maxTokens := cfg.MaxTokens
	temperature := cfg.Temperature
	model, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating openai chat model: %w", err)
	}
	return model, nil
}
