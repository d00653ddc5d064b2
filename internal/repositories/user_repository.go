package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByClerkID(ctx context.Context, clerkUserID string) (*db_models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*db_models.User, error)
	ListAll(ctx context.Context) ([]db_models.User, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// IsUniqueViolation reports whether err is a duplicate-key failure. Two
// near-simultaneous first visits from the same identity race on the
// clerk_user_id unique index; the loser must re-fetch, not fail.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *userRepository) FindByClerkID(ctx context.Context, clerkUserID string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "clerk_user_id = ?", clerkUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*db_models.User, error) {
	res := u.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return u.FindByID(ctx, id)
}

func (u *userRepository) ListAll(ctx context.Context) ([]db_models.User, error) {
	var users []db_models.User
	err := u.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteCascade removes the user's avatars, credit log and finally the user
// row in one transaction, so a failure midway leaves nothing half-deleted.
func (u *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&db_models.Avatar{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&db_models.CreditLogEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&db_models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
