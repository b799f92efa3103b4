package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	ollama "github.com/JexSrs/go-ollama"
	"github.com/sirupsen/logrus"
)

// OllamaClient runs prompts against a local Ollama instance. Local
// models tend to wrap JSON answers in code fences; fence stripping is
// the consumers' job, so responses are handed back verbatim.
type OllamaClient struct {
	client *ollama.Ollama
	model  string
}

// NewOllamaClient creates a client for the given Ollama host.
func NewOllamaClient(host, model string) (*OllamaClient, error) {
	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	logrus.Infof("Using Ollama engine at %s, model: %s", host, model)
	return &OllamaClient{
		client: ollama.New(*ollamaURL),
		model:  model,
	}, nil
}

// Complete sends one Generate request. The request credential is
// ignored; Ollama has no notion of API keys.
func (oc *OllamaClient) Complete(ctx context.Context, req Request) (string, error) {
	res, err := oc.client.Generate(
		oc.client.Generate.WithModel(oc.model),
		oc.client.Generate.WithSystem(req.System),
		oc.client.Generate.WithPrompt(req.Prompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama Generate call failed: %w", err)
	}

	if !res.Done {
		return "", errors.New("ollama request did not complete (unexpected streaming behavior)")
	}
	if res.Response == "" {
		return "", errors.New("ollama returned an empty response marked as done")
	}

	logrus.Debug("Response received from Ollama.")
	return strings.TrimSpace(res.Response), nil
}
