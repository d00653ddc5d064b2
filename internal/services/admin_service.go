package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/config"
	"avatarforge/pkg/utils"
)

// AdminServiceInterface is the privileged surface. Every method re-checks the
// caller's admin flag even though the route group is already behind the admin
// middleware; defense at both layers.
type AdminServiceInterface interface {
	ListAccounts(ctx context.Context, caller *db_models.User) ([]db_models.User, error)
	AdjustCredits(ctx context.Context, caller *db_models.User, userID uuid.UUID, amount int, isAdd bool) (*db_models.User, error)
	SetActive(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error)
	SetAuthenticated(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error)
	// SetAdmin additionally requires the caller's email to be on the
	// super-admin list.
	SetAdmin(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error)
	CreditHistory(ctx context.Context, caller *db_models.User, userID uuid.UUID) ([]db_models.CreditLogEntry, error)
	BulkCreate(ctx context.Context, caller *db_models.User, emails []string, defaultCredits int) ([]db_models.User, error)
	DeleteAccount(ctx context.Context, caller *db_models.User, userID uuid.UUID) error
}

type AdminService struct {
	userRepo      repositories.UserRepository
	creditService CreditServiceInterface
	mailService   IMailService
	cfg           *config.Config
}

func NewAdminService(
	userRepo repositories.UserRepository,
	creditService CreditServiceInterface,
	mailService IMailService,
	cfg *config.Config,
) AdminServiceInterface {
	return &AdminService{
		userRepo:      userRepo,
		creditService: creditService,
		mailService:   mailService,
		cfg:           cfg,
	}
}

func requireAdmin(caller *db_models.User) error {
	if caller == nil || !caller.IsAdmin {
		return utils.ErrForbidden
	}
	return nil
}

func (s *AdminService) ListAccounts(ctx context.Context, caller *db_models.User) ([]db_models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return users, nil
}

func (s *AdminService) AdjustCredits(ctx context.Context, caller *db_models.User, userID uuid.UUID, amount int, isAdd bool) (*db_models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.creditService.Adjust(ctx, userID, amount, isAdd)
}

func (s *AdminService) SetActive(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error) {
	return s.setFlag(ctx, caller, userID, "is_active", value)
}

func (s *AdminService) SetAuthenticated(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error) {
	return s.setFlag(ctx, caller, userID, "is_authenticated", value)
}

func (s *AdminService) SetAdmin(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	// Only the super admin may grant or revoke admin rights; enforced here,
	// not just in the admin UI.
	if !s.cfg.IsSuperAdminEmail(caller.Email) {
		return nil, utils.ErrForbidden
	}
	return s.setFlag(ctx, caller, userID, "is_admin", value)
}

func (s *AdminService) setFlag(ctx context.Context, caller *db_models.User, userID uuid.UUID, column string, value bool) (*db_models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	user, err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{column: value})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (s *AdminService) CreditHistory(ctx context.Context, caller *db_models.User, userID uuid.UUID) ([]db_models.CreditLogEntry, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.creditService.History(ctx, userID)
}

// BulkCreate imports one account per email with a synthetic external id.
// Imported accounts skip the approval queue. Duplicate or malformed addresses
// are skipped, not fatal.
func (s *AdminService) BulkCreate(ctx context.Context, caller *db_models.User, emails []string, defaultCredits int) ([]db_models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if defaultCredits <= 0 {
		defaultCredits = s.cfg.StartingCredits
	}

	var created []db_models.User
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if !strings.Contains(email, "@") {
			continue
		}
		user := &db_models.User{
			ClerkUserID:     fmt.Sprintf("import_%s", uuid.New()),
			Email:           email,
			Credits:         defaultCredits,
			IsActive:        true,
			IsAuthenticated: false,
		}
		if err := s.userRepo.Insert(ctx, user); err != nil {
			log.Printf("Bulk import: failed to create account for %s: %v", email, err)
			continue
		}
		created = append(created, *user)

		if s.mailService != nil {
			if err := s.mailService.SendInviteEmail(email, defaultCredits); err != nil {
				log.Printf("Bulk import: invite mail to %s failed: %v", email, err)
			}
		}
	}
	if len(created) == 0 {
		return nil, utils.ErrInvalidInput
	}
	return created, nil
}

func (s *AdminService) DeleteAccount(ctx context.Context, caller *db_models.User, userID uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrAccountNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}
