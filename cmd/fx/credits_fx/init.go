package credits_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"avatarforge/internal/repositories"
	"avatarforge/internal/services"
)

var Module = fx.Provide(
	provideCreditService, provideCreditRepo)

func provideCreditRepo(db *gorm.DB) repositories.CreditRepository {
	return repositories.NewCreditRepository(db)
}

func provideCreditService(creditRepo repositories.CreditRepository) services.CreditServiceInterface {
	return services.NewCreditService(creditRepo)
}
