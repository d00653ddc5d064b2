package users_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"avatarforge/internal/repositories"
	"avatarforge/internal/services"
	"avatarforge/pkg/config"
)

var Module = fx.Provide(
	provideUserService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideUserService(userRepo repositories.UserRepository, cfg *config.Config) services.UserServiceInterface {
	return services.NewUserService(userRepo, cfg)
}
