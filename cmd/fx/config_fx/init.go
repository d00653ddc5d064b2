package config_fx

import (
	"go.uber.org/fx"

	"avatarforge/pkg/config"
)

var Module = fx.Provide(config.Load)
