package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/charsheet/internal/config"
)

// NewClient selects the backend named by cfg.Provider. It returns a nil
// Client and no error when no API key is configured, leaving the relay
// disabled.
func NewClient(ctx context.Context, cfg config.RelayConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		log.Warn("No relay API key configured, chat relay disabled", "provider", cfg.Provider)
		return nil, nil
	}

	log.Info("Initializing chat relay client", "provider", cfg.Provider)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		client, err := NewOpenAIClient(cfg.APIKey, cfg.BaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown relay provider specified: %s", cfg.Provider)
	}
}
