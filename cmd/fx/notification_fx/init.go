package notification_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	provideNotificationRepo,
	provideScheduleRepo,
	services.NewNotificationService,
	services.NewScheduledNotificationService,
	controllers.NewNotificationController,
	controllers.NewScheduledNotificationController,
)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideScheduleRepo(db *gorm.DB) repositories.ScheduledNotificationRepository {
	return repositories.NewScheduledNotificationRepository(db)
}
