package llm

import (
	"fmt"
	"os"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
)

// NewProvider builds a judge provider from config. Returns (nil, nil) when
// no provider is configured, which the LLM source treats as abstention.
func NewProvider(cfg config.LLMEvaluationConfig) (domain.JudgeProvider, error) {
	if cfg.Provider == "" {
		return nil, nil
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)

	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(apiKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(apiKey, "", cfg.Model), nil
	case "openai-compatible":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("provider %q requires base_url", cfg.Provider)
		}
		return NewOpenAIProvider(apiKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, cfg.Provider)
	}
}
