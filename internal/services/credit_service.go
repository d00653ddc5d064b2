package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/utils"
)

type CreditServiceInterface interface {
	// Debit charges amount credits, failing without side effects when the
	// balance is short.
	Debit(ctx context.Context, userID uuid.UUID, amount int, description string) (*db_models.User, error)
	// Refund returns credits after a failed generation.
	Refund(ctx context.Context, userID uuid.UUID, amount int, description string) (*db_models.User, error)
	// Adjust is the admin path: no lower-bound check, negative balances allowed.
	Adjust(ctx context.Context, userID uuid.UUID, amount int, isAdd bool) (*db_models.User, error)
	History(ctx context.Context, userID uuid.UUID) ([]db_models.CreditLogEntry, error)
}

type CreditService struct {
	creditRepo repositories.CreditRepository
}

func NewCreditService(creditRepo repositories.CreditRepository) CreditServiceInterface {
	return &CreditService{creditRepo: creditRepo}
}

func (s *CreditService) Debit(ctx context.Context, userID uuid.UUID, amount int, description string) (*db_models.User, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidInput
	}
	user, err := s.creditRepo.Debit(ctx, userID, amount, db_models.CreditActionDeduct, description)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBalanceTooLow):
			return nil, utils.ErrInsufficientCredits
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, utils.ErrAccountNotFound
		default:
			return nil, utils.ErrDatabaseError
		}
	}
	return user, nil
}

func (s *CreditService) Refund(ctx context.Context, userID uuid.UUID, amount int, description string) (*db_models.User, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidInput
	}
	user, err := s.creditRepo.Credit(ctx, userID, amount, db_models.CreditActionRefund, description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrAccountNotFound
		}
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (s *CreditService) Adjust(ctx context.Context, userID uuid.UUID, amount int, isAdd bool) (*db_models.User, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidInput
	}

	delta := amount
	actionType := db_models.CreditActionAdminAdd
	description := fmt.Sprintf("Admin added %d credits", amount)
	if !isAdd {
		delta = -amount
		actionType = db_models.CreditActionAdminRemove
		description = fmt.Sprintf("Admin removed %d credits", amount)
	}

	user, err := s.creditRepo.AdjustUnchecked(ctx, userID, delta, actionType, description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrAccountNotFound
		}
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (s *CreditService) History(ctx context.Context, userID uuid.UUID) ([]db_models.CreditLogEntry, error) {
	entries, err := s.creditRepo.History(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return entries, nil
}
