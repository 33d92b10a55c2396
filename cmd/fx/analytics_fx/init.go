package analytics_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsRepo, provideAnalyticsService, controllers.NewAnalyticsController,
)

func provideAnalyticsRepo(db *gorm.DB) repositories.AnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(analyticsRepo repositories.AnalyticsRepository) services.AnalyticsService {
	return services.NewAnalyticsService(analyticsRepo)
}
