package avatars_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"avatarforge/internal/repositories"
	"avatarforge/internal/services"
)

var Module = fx.Provide(
	provideAvatarService, provideAvatarRepo)

func provideAvatarRepo(db *gorm.DB) repositories.AvatarRepository {
	return repositories.NewAvatarRepository(db)
}

func provideAvatarService(avatarRepo repositories.AvatarRepository) services.AvatarServiceInterface {
	return services.NewAvatarService(avatarRepo)
}
