package controllers_fx

import (
	"go.uber.org/fx"

	"avatarforge/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewAvatarController),
	fx.Provide(controllers.NewGenerationController),
	fx.Provide(controllers.NewAdminController))
