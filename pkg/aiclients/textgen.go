package aiclients

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerationClient is the boundary to the third-party LLM. Implementations
// must return the raw completion text; callers own prompt construction and
// response parsing.
type TextGenerationClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Close() error
}

// NewTextGenerationClient builds a client for the configured provider.
func NewTextGenerationClient(provider, apiKey, model string) (TextGenerationClient, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAITextClient(apiKey, model), nil
	case "gemini":
		return NewGeminiTextClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported text generation provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
