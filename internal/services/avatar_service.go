package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/models/request_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/utils"
)

type AvatarServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]db_models.Avatar, error)
	// Update replaces whole sections; sections absent from the patch keep
	// their stored value. Last writer wins, no concurrency token.
	Update(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, patch *request_models.UpdateAvatarRequest) (*db_models.Avatar, error)
	Delete(ctx context.Context, caller *db_models.User, avatarID uuid.UUID) error
}

type AvatarService struct {
	avatarRepo repositories.AvatarRepository
}

func NewAvatarService(avatarRepo repositories.AvatarRepository) AvatarServiceInterface {
	return &AvatarService{avatarRepo: avatarRepo}
}

func (s *AvatarService) List(ctx context.Context, userID uuid.UUID) ([]db_models.Avatar, error) {
	avatars, err := s.avatarRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return avatars, nil
}

// loadOwnedAvatar loads an avatar and checks the caller owns it (admins may
// touch any avatar).
func loadOwnedAvatar(ctx context.Context, repo repositories.AvatarRepository, caller *db_models.User, avatarID uuid.UUID) (*db_models.Avatar, error) {
	avatar, err := repo.FindByID(ctx, avatarID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if avatar == nil {
		return nil, utils.ErrAvatarNotFound
	}
	if avatar.UserID != caller.ID && !caller.IsAdmin {
		return nil, utils.ErrForbidden
	}
	return avatar, nil
}

func (s *AvatarService) Update(ctx context.Context, caller *db_models.User, avatarID uuid.UUID, patch *request_models.UpdateAvatarRequest) (*db_models.Avatar, error) {
	avatar, err := loadOwnedAvatar(ctx, s.avatarRepo, caller, avatarID)
	if err != nil {
		return nil, err
	}

	if patch.Details != nil {
		avatar.Details = db_models.MarshalDetails(patch.Details)
	}
	for name, section := range patch.Sections() {
		if section != nil {
			avatar.SetSection(name, *section)
		}
	}
	switch {
	case patch.Name != nil:
		avatar.Name = *patch.Name
	case patch.Details != nil:
		avatar.Name = db_models.DeriveName(patch.Details)
	}
	if patch.TargetAudience != nil {
		avatar.TargetAudience = *patch.TargetAudience
	}
	if patch.HelpDescription != nil {
		avatar.HelpDescription = *patch.HelpDescription
	}
	if patch.ImageURL != nil {
		avatar.ImageURL = *patch.ImageURL
	}

	if err := s.avatarRepo.Save(ctx, avatar); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return avatar, nil
}

// Delete removes the avatar row only; the credit originally spent on it stays
// spent and its ledger history stays intact.
func (s *AvatarService) Delete(ctx context.Context, caller *db_models.User, avatarID uuid.UUID) error {
	if _, err := loadOwnedAvatar(ctx, s.avatarRepo, caller, avatarID); err != nil {
		return err
	}
	if err := s.avatarRepo.Delete(ctx, avatarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrAvatarNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}
