package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// chatClient mirrors the single go-openai method we call, so tests can
// substitute a stub and any OpenAI-compatible endpoint can be adapted.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator implements Generator over the OpenAI chat
// completions API with a bounded timeout and transport-level retries.
type OpenAIGenerator struct {
	client     chatClient
	model      string
	maxRetries int
}

// OpenAIConfig holds the knobs for the OpenAI backend.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// NewOpenAI builds an OpenAIGenerator.
func NewOpenAI(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIGenerator{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
	}
}

// Generate sends the prompt as a single user message and returns the
// first choice's content. Transient errors are retried up to
// MaxRetries times before the last error is reported.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("openai generate canceled: %w", err)
		}
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("openai returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("openai chat completion: %w", lastErr)
}
