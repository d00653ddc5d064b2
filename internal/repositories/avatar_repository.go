package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
)

type AvatarRepository interface {
	Insert(ctx context.Context, avatar *db_models.Avatar) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Avatar, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Avatar, error)
	Save(ctx context.Context, avatar *db_models.Avatar) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type avatarRepository struct {
	db *gorm.DB
}

func NewAvatarRepository(db *gorm.DB) AvatarRepository {
	return &avatarRepository{db: db}
}

func (a *avatarRepository) Insert(ctx context.Context, avatar *db_models.Avatar) error {
	return a.db.WithContext(ctx).Create(avatar).Error
}

func (a *avatarRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Avatar, error) {
	var avatar db_models.Avatar
	err := a.db.WithContext(ctx).First(&avatar, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	// Single migration point for rows saved under historical schemas.
	avatar.Normalize()
	return &avatar, nil
}

func (a *avatarRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Avatar, error) {
	var avatars []db_models.Avatar
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&avatars).Error
	if err != nil {
		return nil, err
	}
	for i := range avatars {
		avatars[i].Normalize()
	}
	return avatars, nil
}

func (a *avatarRepository) Save(ctx context.Context, avatar *db_models.Avatar) error {
	return a.db.WithContext(ctx).Save(avatar).Error
}

func (a *avatarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := a.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.Avatar{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
