package provider

import (
	"context"

	"github.com/flowbaker/copysmith/pkg/ai-sdk/types"
)

// LanguageModel defines the interface that all LLM providers must implement
type LanguageModel interface {
	// Generate produces a complete response (blocking)
	Generate(ctx context.Context, req GenerateRequest) (*types.GenerateResponse, error)

	// ID returns the unique identifier for this model
	ID() string
}

// GenerateRequest contains all parameters for generating text
type GenerateRequest struct {
	// Messages is the conversation history
	Messages []types.Message `json:"messages"`

	// System is an optional system prompt
	System string `json:"system,omitempty"`

	// Temperature controls randomness. It is always sent, zero included.
	Temperature float32 `json:"temperature"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`

	// Stop sequences where generation should stop
	Stop []string `json:"stop,omitempty"`
}

// Name identifies a provider in configuration
type Name string

const (
	NameAnthropic Name = "anthropic"
	NameOpenAI    Name = "openai"
	NameGemini    Name = "gemini"
)
