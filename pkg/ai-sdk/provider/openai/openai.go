package openai

import (
	"context"
	"fmt"
	"math"

	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/types"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when configuration leaves the model empty
const DefaultModel = "gpt-4o-mini"

// Provider implements the LanguageModel interface for OpenAI
type Provider struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// New creates a new OpenAI provider
func New(apiKey, model string) *Provider {
	return NewWithConfig(Config{APIKey: apiKey, Model: model})
}

func NewWithConfig(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
	}
}

// Generate implements the Generate method of the LanguageModel interface
func (p *Provider) Generate(ctx context.Context, req provider.GenerateRequest) (*types.GenerateResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertMessages(req.Messages, req.System),
		Temperature: sendableTemperature(req.Temperature),
		Stop:        req.Stop,
	}

	if req.MaxTokens > 0 {
		if isMaxCompletionTokensModel(p.model) {
			chatReq.MaxCompletionTokens = req.MaxTokens
		} else {
			chatReq.MaxTokens = req.MaxTokens
		}
	}

	log.Debug().Str("model", p.model).Int("max_tokens", req.MaxTokens).Msg("Sending chat completion request")

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, types.ErrEmptyResponse
	}

	choice := resp.Choices[0]

	return &types.GenerateResponse{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Model:        resp.Model,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// ID returns the model identifier
func (p *Provider) ID() string {
	return fmt.Sprintf("openai:%s", p.model)
}

func convertMessages(messages []types.Message, system string) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages)+1)

	if system != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	return result
}

// sendableTemperature keeps a requested 0.0 from being dropped by omitempty, which
// would make the API fall back to its default of 1.0.
func sendableTemperature(temperature float32) float32 {
	if temperature == 0 {
		return math.SmallestNonzeroFloat32
	}
	return temperature
}

var maxCompletionTokensModels = map[string]bool{
	"o1": true, "o1-mini": true, "o3": true, "o3-mini": true,
	"gpt-5": true, "gpt-5-mini": true, "gpt-5-nano": true,
}

func isMaxCompletionTokensModel(model string) bool {
	return maxCompletionTokensModels[model]
}
