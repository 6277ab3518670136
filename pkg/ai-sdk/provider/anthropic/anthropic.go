package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/types"
)

// DefaultModel is the model product copy has always been generated with
const DefaultModel = "claude-3-haiku-20240307"

// Provider implements the LanguageModel interface for Anthropic Claude
type Provider struct {
	client anthropic.Client
	model  string
	config Config
}

// Config holds Anthropic-specific configuration
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// New creates a new Anthropic provider
func New(apiKey, model string) *Provider {
	return NewWithConfig(Config{
		APIKey: apiKey,
		Model:  model,
	})
}

// NewWithConfig creates a new Anthropic provider with custom configuration.
// The SDK's built-in retries are disabled: a failed call is reported to the caller as is.
func NewWithConfig(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &Provider{
		client: client,
		model:  config.Model,
		config: config,
	}
}

// ID returns the model identifier
func (p *Provider) ID() string {
	return fmt.Sprintf("anthropic:%s", p.model)
}

// Generate implements the Generate method of the LanguageModel interface
func (p *Provider) Generate(ctx context.Context, req provider.GenerateRequest) (*types.GenerateResponse, error) {
	msgReq := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		Messages:    convertMessages(req.Messages),
		Temperature: anthropic.Float(float64(req.Temperature)),
	}

	if req.System != "" {
		msgReq.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	if req.MaxTokens > 0 {
		msgReq.MaxTokens = int64(req.MaxTokens)
	} else if p.config.MaxTokens > 0 {
		msgReq.MaxTokens = int64(p.config.MaxTokens)
	} else {
		// Anthropic requires max_tokens, set a reasonable default
		msgReq.MaxTokens = int64(1024)
	}

	if len(req.Stop) > 0 {
		msgReq.StopSequences = req.Stop
	}

	resp, err := p.client.Messages.New(ctx, msgReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var textContent strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			textContent.WriteString(block.Text)
		}
	}

	return &types.GenerateResponse{
		Content:      textContent.String(),
		Model:        string(resp.Model),
		FinishReason: mapStopReason(resp.StopReason),
		Usage: types.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}

func convertMessages(messages []types.Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)

		switch msg.Role {
		case types.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(block))
		default:
			result = append(result, anthropic.NewUserMessage(block))
		}
	}

	return result
}

func mapStopReason(reason anthropic.StopReason) string {
	switch reason {
	case anthropic.StopReasonMaxTokens:
		return types.FinishReasonLength
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence:
		return types.FinishReasonStop
	default:
		return string(reason)
	}
}
