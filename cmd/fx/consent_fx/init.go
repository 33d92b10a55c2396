package consent_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	provideConsentRepo, services.NewConsentService, controllers.NewConsentController,
)

func provideConsentRepo(db *gorm.DB) repositories.ConsentRepository {
	return repositories.NewConsentRepository(db)
}
