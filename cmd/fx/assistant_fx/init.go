package assistant_fx

import (
	"go.uber.org/fx"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(
	services.NewDoctorService,
	services.NewChatService,
	controllers.NewDoctorController,
	controllers.NewChatController,
)
