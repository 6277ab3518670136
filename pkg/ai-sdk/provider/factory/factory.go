package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider/anthropic"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider/gemini"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider/openai"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/types"
)

// Config selects and configures one provider
type Config struct {
	Provider provider.Name
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds the language model named by config.Provider
func New(ctx context.Context, config Config) (provider.LanguageModel, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", config.Provider, types.ErrMissingAPIKey)
	}

	switch config.Provider {
	case provider.NameAnthropic, "":
		return anthropic.NewWithConfig(anthropic.Config{
			APIKey:  config.APIKey,
			Model:   config.Model,
			BaseURL: config.BaseURL,
		}), nil
	case provider.NameOpenAI:
		return openai.NewWithConfig(openai.Config{
			APIKey:  config.APIKey,
			Model:   config.Model,
			BaseURL: config.BaseURL,
		}), nil
	case provider.NameGemini:
		return gemini.New(ctx, config.APIKey, config.Model)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownProvider, config.Provider)
	}
}
