package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/config"
	"avatarforge/pkg/utils"
)

type UserServiceInterface interface {
	// EnsureAccount resolves the account for an identity-provider user,
	// creating it on first contact. Idempotent for the same (id, email) pair.
	EnsureAccount(ctx context.Context, clerkUserID, email string) (*db_models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	GetByClerkID(ctx context.Context, clerkUserID string) (*db_models.User, error)
}

// IsAuthorized is the product-access gate: administrators bypass approval,
// everyone else needs both flags. Pure predicate; mutation lives in
// provisioning and the admin operations.
func IsAuthorized(user *db_models.User) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	return user.IsActive && user.IsAuthenticated
}

type UserService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repositories.UserRepository, cfg *config.Config) UserServiceInterface {
	return &UserService{userRepo: userRepo, cfg: cfg}
}

func (s *UserService) EnsureAccount(ctx context.Context, clerkUserID, email string) (*db_models.User, error) {
	existing, err := s.userRepo.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	isAdmin := s.cfg.IsAdminEmail(email)

	if existing != nil {
		updates := map[string]interface{}{}
		if email != "" && existing.Email != email {
			updates["email"] = email
		}
		if isAdmin && !existing.IsAuthenticated {
			updates["is_authenticated"] = true
		}
		if isAdmin && !existing.IsAdmin {
			updates["is_admin"] = true
		}
		if len(updates) == 0 {
			return existing, nil
		}
		updated, err := s.userRepo.UpdateFields(ctx, existing.ID, updates)
		if err != nil {
			// The stale row is still usable; the refresh can happen next visit.
			log.Printf("Failed to refresh account %s: %v", existing.ID, err)
			return existing, nil
		}
		return updated, nil
	}

	newUser := &db_models.User{
		ClerkUserID:     clerkUserID,
		Email:           email,
		Credits:         s.cfg.StartingCredits,
		IsActive:        isAdmin,
		IsAuthenticated: isAdmin,
		IsAdmin:         isAdmin,
	}
	if err := s.userRepo.Insert(ctx, newUser); err != nil {
		if repositories.IsUniqueViolation(err) {
			// Lost a first-visit race; the other request created the row.
			winner, fetchErr := s.userRepo.FindByClerkID(ctx, clerkUserID)
			if fetchErr != nil || winner == nil {
				return nil, utils.ErrDatabaseError
			}
			return winner, nil
		}
		return nil, utils.ErrDatabaseError
	}
	return newUser, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (s *UserService) GetByClerkID(ctx context.Context, clerkUserID string) (*db_models.User, error) {
	user, err := s.userRepo.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}
