package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/aiclients"
	"avatarforge/pkg/storage"
	"avatarforge/pkg/utils"
)

const generationCost = 1

type GenerationServiceInterface interface {
	// Generate runs the full pipeline: debit one credit, text generation,
	// image generation, image re-hosting, persistence. Any failure after the
	// debit triggers a best-effort refund before the error is surfaced.
	Generate(ctx context.Context, caller *db_models.User, targetAudience, helpDescription string) (*db_models.Avatar, error)
	// RegenerateSection replaces one section with fresh points. Free of charge.
	RegenerateSection(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, section string) (*db_models.Section, error)
	// RegenerateImage produces a new headshot for an existing avatar and
	// updates its image URL in place.
	RegenerateImage(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, keyword string) (string, error)
}

// generatedProfile mirrors the JSON schema embedded in the avatar prompt.
type generatedProfile struct {
	Details         map[string]string `json:"details"`
	Story           db_models.Section `json:"story"`
	CurrentWants    db_models.Section `json:"currentWants"`
	PainPoints      db_models.Section `json:"painPoints"`
	Desires         db_models.Section `json:"desires"`
	OfferResults    db_models.Section `json:"offerResults"`
	BiggestProblem  db_models.Section `json:"biggestProblem"`
	Humiliation     db_models.Section `json:"humiliation"`
	Frustrations    db_models.Section `json:"frustrations"`
	Complaints      db_models.Section `json:"complaints"`
	CostOfNotBuying db_models.Section `json:"costOfNotBuying"`
	BiggestWant     db_models.Section `json:"biggestWant"`
}

type GenerationService struct {
	creditService CreditServiceInterface
	avatarRepo    repositories.AvatarRepository
	textClient    aiclients.TextGenerationClient
	imageClient   aiclients.ImageGenerationClient
	blobStore     storage.BlobStore
	httpClient    *http.Client
}

func NewGenerationService(
	creditService CreditServiceInterface,
	avatarRepo repositories.AvatarRepository,
	textClient aiclients.TextGenerationClient,
	imageClient aiclients.ImageGenerationClient,
	blobStore storage.BlobStore,
) GenerationServiceInterface {
	return &GenerationService{
		creditService: creditService,
		avatarRepo:    avatarRepo,
		textClient:    textClient,
		imageClient:   imageClient,
		blobStore:     blobStore,
		httpClient:    &http.Client{},
	}
}

func (s *GenerationService) Generate(ctx context.Context, caller *db_models.User, targetAudience, helpDescription string) (*db_models.Avatar, error) {
	targetAudience = strings.TrimSpace(targetAudience)
	helpDescription = strings.TrimSpace(helpDescription)
	if targetAudience == "" || helpDescription == "" {
		return nil, utils.ErrInvalidInput
	}

	// The debit is a reservation: committed by the avatar insert below,
	// released by the refund on any failure in between.
	if _, err := s.creditService.Debit(ctx, caller.ID, generationCost, "Credits used for avatar generation"); err != nil {
		return nil, err
	}

	profile, err := s.generateProfile(ctx, targetAudience, helpDescription)
	if err != nil {
		return nil, s.refund(ctx, caller, err)
	}

	imageURL, err := s.produceImage(ctx, profile.Details, "")
	if err != nil {
		return nil, s.refund(ctx, caller, err)
	}

	avatar := &db_models.Avatar{
		UserID:          caller.ID,
		ClerkUserID:     caller.ClerkUserID,
		UserEmail:       caller.Email,
		Name:            db_models.DeriveName(profile.Details),
		Details:         db_models.MarshalDetails(profile.Details),
		Story:           db_models.MarshalSection(profile.Story),
		CurrentWants:    db_models.MarshalSection(profile.CurrentWants),
		PainPoints:      db_models.MarshalSection(profile.PainPoints),
		Desires:         db_models.MarshalSection(profile.Desires),
		OfferResults:    db_models.MarshalSection(profile.OfferResults),
		BiggestProblem:  db_models.MarshalSection(profile.BiggestProblem),
		Humiliation:     db_models.MarshalSection(profile.Humiliation),
		Frustrations:    db_models.MarshalSection(profile.Frustrations),
		Complaints:      db_models.MarshalSection(profile.Complaints),
		CostOfNotBuying: db_models.MarshalSection(profile.CostOfNotBuying),
		BiggestWant:     db_models.MarshalSection(profile.BiggestWant),
		TargetAudience:  targetAudience,
		HelpDescription: helpDescription,
		ImageURL:        imageURL,
	}
	if err := s.avatarRepo.Insert(ctx, avatar); err != nil {
		return nil, s.refund(ctx, caller, utils.ErrDatabaseError)
	}
	return avatar, nil
}

func (s *GenerationService) generateProfile(ctx context.Context, targetAudience, helpDescription string) (*generatedProfile, error) {
	reply, err := s.textClient.Complete(ctx, avatarSystemPrompt, buildAvatarPrompt(targetAudience, helpDescription))
	if err != nil {
		log.Printf("Text generation failed: %v", err)
		return nil, utils.ErrGenerationParse
	}

	content := aiclients.ExtractJSON(reply)
	if content == "" || !strings.HasPrefix(content, "{") {
		log.Printf("No JSON object found in completion: %.200s", reply)
		return nil, utils.ErrGenerationParse
	}

	var profile generatedProfile
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		log.Printf("Failed to parse avatar JSON: %v", err)
		return nil, utils.ErrGenerationParse
	}
	if profile.Details == nil {
		profile.Details = map[string]string{}
	}
	return &profile, nil
}

// produceImage generates a headshot, fetches the temporary image and re-hosts
// it under a durable public URL.
func (s *GenerationService) produceImage(ctx context.Context, details map[string]string, keyword string) (string, error) {
	tempURL, err := s.imageClient.GenerateImage(ctx, buildImagePrompt(details, keyword))
	if err != nil {
		log.Printf("Image generation failed: %v", err)
		return "", utils.ErrImageGeneration
	}

	data, err := s.fetchImage(ctx, tempURL)
	if err != nil {
		log.Printf("Image fetch failed: %v", err)
		return "", utils.ErrImageUpload
	}

	key := fmt.Sprintf("avatars/%s.png", uuid.New())
	publicURL, err := s.blobStore.Upload(ctx, key, data, "image/png")
	if err != nil {
		log.Printf("Image upload failed: %v", err)
		return "", utils.ErrImageUpload
	}
	return publicURL, nil
}

func (s *GenerationService) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// refund returns the reserved credit after a pipeline failure. The refund is
// best-effort: its own failure is logged and the original error still wins.
func (s *GenerationService) refund(ctx context.Context, caller *db_models.User, cause error) error {
	if _, err := s.creditService.Refund(ctx, caller.ID, generationCost, "Refund for failed avatar generation"); err != nil {
		log.Printf("Failed to refund credit for user %s after %v: %v", caller.ID, cause, err)
	}
	return cause
}

func (s *GenerationService) RegenerateSection(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, section string) (*db_models.Section, error) {
	if !db_models.IsSectionName(section) {
		return nil, utils.ErrInvalidInput
	}
	avatar, err := loadOwnedAvatar(ctx, s.avatarRepo, caller, avatarID)
	if err != nil {
		return nil, err
	}

	reply, err := s.textClient.Complete(ctx, avatarSystemPrompt, buildSectionPrompt(section, avatar))
	if err != nil {
		log.Printf("Section generation failed: %v", err)
		return nil, utils.ErrGenerationParse
	}

	content := aiclients.ExtractJSON(reply)
	if content == "" {
		log.Printf("No JSON found in section completion: %.200s", reply)
		return nil, utils.ErrGenerationParse
	}
	if !json.Valid([]byte(content)) {
		return nil, utils.ErrGenerationParse
	}

	// The reply arrives in the legacy array shapes the prompt asks for;
	// normalization folds it into the canonical section.
	generated := db_models.NormalizeSection([]byte(content))
	if len(generated.Points) == 0 {
		return nil, utils.ErrGenerationParse
	}

	avatar.SetSection(section, generated)
	if err := s.avatarRepo.Save(ctx, avatar); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &generated, nil
}

func (s *GenerationService) RegenerateImage(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, keyword string) (string, error) {
	avatar, err := loadOwnedAvatar(ctx, s.avatarRepo, caller, avatarID)
	if err != nil {
		return "", err
	}

	imageURL, err := s.produceImage(ctx, avatar.DetailsMap(), keyword)
	if err != nil {
		return "", err
	}

	avatar.ImageURL = imageURL
	avatar.ImageKeyword = keyword
	if err := s.avatarRepo.Save(ctx, avatar); err != nil {
		return "", utils.ErrDatabaseError
	}
	return imageURL, nil
}
