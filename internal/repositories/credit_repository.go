package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
)

// ErrBalanceTooLow is returned by Debit when the conditional update matches
// no row because the balance is below the requested amount.
var ErrBalanceTooLow = errors.New("balance too low")

type CreditRepository interface {
	// Debit atomically decrements the balance iff credits >= amount, and
	// appends the matching log entry in the same transaction.
	Debit(ctx context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error)
	// Credit increments the balance with no lower-bound check and appends the
	// matching log entry in the same transaction.
	Credit(ctx context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error)
	// AdjustUnchecked applies a signed delta with no bound check at all;
	// admin removals may push the balance negative.
	AdjustUnchecked(ctx context.Context, userID uuid.UUID, delta int, actionType, description string) (*db_models.User, error)
	History(ctx context.Context, userID uuid.UUID) ([]db_models.CreditLogEntry, error)
}

type creditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (c *creditRepository) Debit(ctx context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error) {
	var user db_models.User
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.User{}).
			Where("id = ? AND credits >= ?", userID, amount).
			Update("credits", gorm.Expr("credits - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing account from an underfunded one.
			var count int64
			if err := tx.Model(&db_models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrBalanceTooLow
		}
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Create(&db_models.CreditLogEntry{
			UserID:      user.ID,
			ClerkUserID: user.ClerkUserID,
			Amount:      -amount,
			ActionType:  actionType,
			Description: description,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *creditRepository) Credit(ctx context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error) {
	return c.AdjustUnchecked(ctx, userID, amount, actionType, description)
}

func (c *creditRepository) AdjustUnchecked(ctx context.Context, userID uuid.UUID, delta int, actionType, description string) (*db_models.User, error) {
	var user db_models.User
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.User{}).
			Where("id = ?", userID).
			Update("credits", gorm.Expr("credits + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Create(&db_models.CreditLogEntry{
			UserID:      user.ID,
			ClerkUserID: user.ClerkUserID,
			Amount:      delta,
			ActionType:  actionType,
			Description: description,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *creditRepository) History(ctx context.Context, userID uuid.UUID) ([]db_models.CreditLogEntry, error) {
	var entries []db_models.CreditLogEntry
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
