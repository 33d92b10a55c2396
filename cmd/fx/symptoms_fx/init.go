package symptoms_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	provideSymptomRepo, services.NewSymptomService, controllers.NewSymptomController,
)

func provideSymptomRepo(db *gorm.DB) repositories.SymptomRepository {
	return repositories.NewSymptomRepository(db)
}
