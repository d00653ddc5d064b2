package aigen_fx

import (
	"log"

	"go.uber.org/fx"

	"avatarforge/internal/repositories"
	"avatarforge/internal/services"
	"avatarforge/pkg/aiclients"
	"avatarforge/pkg/config"
	"avatarforge/pkg/storage"
)

var Module = fx.Provide(
	provideTextClient,
	provideImageClient,
	provideBlobStore,
	provideGenerationService)

func provideTextClient(lc fx.Lifecycle, cfg *config.Config) (aiclients.TextGenerationClient, error) {
	apiKey := cfg.OpenAIAPIKey
	model := cfg.OpenAIModel
	if cfg.TextGenProvider == "gemini" {
		apiKey = cfg.GeminiAPIKey
		model = cfg.GeminiModel
	}

	log.Printf("Initializing %s text generation client with model: %s", cfg.TextGenProvider, model)

	client, err := aiclients.NewTextGenerationClient(cfg.TextGenProvider, apiKey, model)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

func provideImageClient(cfg *config.Config) aiclients.ImageGenerationClient {
	return aiclients.NewOpenAIImageClient(cfg.OpenAIAPIKey, cfg.ImageModel)
}

func provideBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	return storage.NewS3Store(storage.S3Config{
		BaseEndpoint: cfg.S3BaseEndpoint,
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		PublicBase:   cfg.S3PublicBase,
	})
}

func provideGenerationService(
	creditService services.CreditServiceInterface,
	avatarRepo repositories.AvatarRepository,
	textClient aiclients.TextGenerationClient,
	imageClient aiclients.ImageGenerationClient,
	blobStore storage.BlobStore,
) services.GenerationServiceInterface {
	return services.NewGenerationService(creditService, avatarRepo, textClient, imageClient, blobStore)
}
