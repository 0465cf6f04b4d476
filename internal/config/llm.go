package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/salesdash/pkg/log"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
	ProviderGemini     = "gemini"
)

// LLMConfig selects the reasoning service. A Temperature of 0 reaches
// OpenAI-compatible endpoints as 1e-45, the smallest positive float32,
// because the client omits zero values.
type LLMConfig struct {
	Provider    string        `env:"LLM_PROVIDER" envDefault:"openai"`
	Model       string        `env:"LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	APIKey      string        `env:"LLM_API_KEY"`
	BaseURL     string        `env:"LLM_BASE_URL"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"300"`
	Temperature float32       `env:"LLM_TEMPERATURE" envDefault:"0"`
	MaxRetries  int           `env:"LLM_MAX_RETRIES" envDefault:"2"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c, err := ParseLLMConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func ParseLLMConfig() (*LLMConfig, error) {
	c, err := env.ParseAs[LLMConfig]()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c LLMConfig) GetProvider() string {
	return c.Provider
}

func (c LLMConfig) GetModel() string {
	return c.Model
}

func (c LLMConfig) GetAPIKey() string {
	return c.APIKey
}

// GetBaseURL falls back to the well-known endpoint of the selected provider.
func (c LLMConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	switch c.Provider {
	case ProviderOpenRouter:
		return "https://openrouter.ai/api/v1"
	case ProviderOllama:
		return "http://localhost:11434/v1"
	default:
		return ""
	}
}
