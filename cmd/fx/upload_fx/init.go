package upload_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	provideReportRepo,
	services.NewMedicalReportService,
	services.NewPDFService,
	controllers.NewUploadController,
	controllers.NewReportController,
)

func provideReportRepo(db *gorm.DB) repositories.MedicalReportRepository {
	return repositories.NewMedicalReportRepository(db)
}
