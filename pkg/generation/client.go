package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/ai-sdk/types"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 60 * time.Second

// Client submits rendered prompts to a language model. Each Submit is exactly one
// outbound call: nothing is retried, cached or deduplicated.
type Client struct {
	model   provider.LanguageModel
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
}

type ClientOptions struct {
	// Timeout bounds a single call. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerMinute caps the outbound call cadence. Zero disables the cap.
	RequestsPerMinute int

	Logger *zerolog.Logger
}

func NewClient(model provider.LanguageModel, opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	client := &Client{
		model:   model,
		timeout: timeout,
		logger:  logger.With().Str("model", model.ID()).Logger(),
	}

	if opts.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	return client
}

// Submit sends one prompt and returns the trimmed generated text.
func (c *Client) Submit(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for request slot: %w", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.model.Generate(callCtx, provider.GenerateRequest{
		Messages:    []types.Message{types.UserMessage(req.Prompt)},
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", types.ErrEmptyResponse
	}

	c.logger.Debug().
		Int("max_tokens", req.MaxTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Str("finish_reason", resp.FinishReason).
		Dur("took", time.Since(start)).
		Msg("Generation completed")

	return content, nil
}

func (c *Client) ModelID() string {
	return c.model.ID()
}
