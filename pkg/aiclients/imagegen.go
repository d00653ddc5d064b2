package aiclients

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// imageGenTimeout bounds the DALL·E call; image generation is by far the
// slowest upstream dependency.
const imageGenTimeout = 120 * time.Second

// ImageGenerationClient returns a temporary URL for a generated image. The
// URL expires quickly; callers must re-host the bytes before persisting.
type ImageGenerationClient interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type OpenAIImageClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIImageClient(apiKey, model string) *OpenAIImageClient {
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	return &OpenAIImageClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageGenTimeout)
	defer cancel()

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
		Style:   openai.CreateImageStyleNatural,
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation: no image URL in response")
	}
	return resp.Data[0].URL, nil
}
