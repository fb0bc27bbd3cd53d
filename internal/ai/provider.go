package ai

import (
	"context"
	"errors"
	"time"
)

// TextProvider is the prompt-completion contract shared by both text
// generation backends. Implementations return an error on any transport
// failure, timeout, or non-success response; they never return warning
// text as content.
type TextProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderConfig holds the configuration needed to create a text provider.
type ProviderConfig struct {
	UseGPT bool

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey  string
	GeminiBaseURL string

	Timeout time.Duration
}

// NewProvider creates the backend selected by config. Exactly one backend
// serves all completions for the process lifetime; backends are never
// mixed within a call.
func NewProvider(cfg ProviderConfig) (TextProvider, error) {
	if cfg.UseGPT {
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai api key not configured")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Timeout), nil
	}
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("gemini api key not configured")
	}
	return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Timeout), nil
}
