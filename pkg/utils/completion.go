package utils

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// CompletionClientInterface sends one single-turn prompt to a text-generation
// service and returns the raw text it produced. Implementations do not retry.
type CompletionClientInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// NewCompletionClient builds the client for provider. baseURL is only honored
// by the OpenAI client.
func NewCompletionClient(ctx context.Context, provider, apiKey, model, baseURL string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return NewOpenAICompletionClient(apiKey, model, baseURL), nil
	case ProviderGemini:
		return NewGeminiCompletionClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", provider)
	}
}
