package identity_fx

import (
	"go.uber.org/fx"

	"avatarforge/pkg/config"
	"avatarforge/pkg/identity"
)

var Module = fx.Provide(provideVerifier)

func provideVerifier(cfg *config.Config) (*identity.Verifier, error) {
	return identity.NewVerifier(cfg.IdentityIssuer, cfg.IdentityJWKSURL)
}
