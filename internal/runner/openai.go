package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIRunner calls the OpenAI chat completions API for annotated
// responses.
type OpenAIRunner struct {
	client *openai.Client
	model  string

	Stats *LLMStats
}

func NewOpenAIRunner(apiKey, model string) *OpenAIRunner {
	return &OpenAIRunner{
		client: openai.NewClient(apiKey),
		model:  model,
		Stats:  NewLLMStats(time.Hour),
	}
}

func (r *OpenAIRunner) Run(ctx context.Context, prompt, variant string, cfg VariantConfig) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:               r.model,
		MaxCompletionTokens: maxTokens(cfg),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(cfg)},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, req)
	r.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		// go-openai wraps HTTP status in APIError; treat rate limits and
		// server faults as transient.
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500) {
			return "", &RetryableError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("openai api: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier.
func (r *OpenAIRunner) Model() string {
	return r.model
}

func (r *OpenAIRunner) Name() string {
	return "openai/" + r.model
}
