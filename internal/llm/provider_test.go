package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
)

func TestNewProvider(t *testing.T) {
	t.Run("unconfigured returns nil", func(t *testing.T) {
		p, err := NewProvider(config.LLMEvaluationConfig{})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("anthropic", func(t *testing.T) {
		p, err := NewProvider(config.LLMEvaluationConfig{
			Provider: "anthropic",
			Model:    "claude-3-5-haiku-20241022",
		})
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("openai", func(t *testing.T) {
		p, err := NewProvider(config.LLMEvaluationConfig{Provider: "openai", Model: "gpt-4o-mini"})
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("openai-compatible requires base url", func(t *testing.T) {
		_, err := NewProvider(config.LLMEvaluationConfig{Provider: "openai-compatible"})
		assert.Error(t, err)

		p, err := NewProvider(config.LLMEvaluationConfig{
			Provider: "openai-compatible",
			BaseURL:  "http://localhost:8080/v1",
			Model:    "local-model",
		})
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(config.LLMEvaluationConfig{Provider: "psychic"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownProvider)
	})
}
