package admin_fx

import (
	"go.uber.org/fx"

	"avatarforge/internal/repositories"
	"avatarforge/internal/services"
	"avatarforge/pkg/config"
)

var Module = fx.Provide(provideAdminService)

func provideAdminService(
	userRepo repositories.UserRepository,
	creditService services.CreditServiceInterface,
	mailService services.IMailService,
	cfg *config.Config,
) services.AdminServiceInterface {
	return services.NewAdminService(userRepo, creditService, mailService, cfg)
}
