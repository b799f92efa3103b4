package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// GroqClient talks to Groq's OpenAI-compatible chat completion API.
// JSON mode is always requested; every prompt contract in this service
// expects a JSON object back.
type GroqClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
}

// NewGroqClient creates a Groq-backed engine client.
func NewGroqClient(baseURL, apiKey, model string, temperature float32) *GroqClient {
	logrus.Infof("Using Groq engine, model: %s", model)
	return &GroqClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

// Complete sends one chat completion request. A per-request key takes
// precedence over the process credential.
func (gc *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	key := gc.apiKey
	if req.APIKey != "" {
		key = req.APIKey
	}
	if key == "" {
		return "", errors.New("no engine credential configured")
	}

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = gc.baseURL
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       gc.model,
		Temperature: gc.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	logrus.Debug("Response received from Groq.")
	return resp.Choices[0].Message.Content, nil
}
