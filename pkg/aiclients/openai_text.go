package aiclients

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAITextClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITextClient(apiKey, model string) *OpenAITextClient {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAITextClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAITextClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   3000,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no content in completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAITextClient) Close() error { return nil }
