package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/pkg/log"
)

// NewProvider creates the configured AIProvider wrapped with retries.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	var (
		p   core.AIProvider
		err error
	)

	switch cfg.GetProvider() {
	case config.ProviderOpenAI:
		p = NewOpenAI(cfg.GetAPIKey(), cfg.GetModel(), cfg.MaxTokens, cfg.Temperature)
	case config.ProviderOpenRouter:
		p = NewOpenRouter(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.MaxTokens, cfg.Temperature)
	case config.ProviderOllama, config.ProviderCustom:
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required for provider %s", cfg.Provider)
		}
		p = NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     cfg.GetBaseURL(),
			APIKey:      cfg.GetAPIKey(),
			Model:       cfg.GetModel(),
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	case config.ProviderGemini:
		if cfg.GetAPIKey() == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required for provider %s", cfg.Provider)
		}
		p, err = NewGemini(ctx, cfg.GetAPIKey(), cfg.GetModel(), cfg.MaxTokens, cfg.Temperature)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	return NewRetrying(p, DefaultRetryConfig(cfg.MaxRetries), cfg.Timeout), nil
}
