package controllers_fx

import (
	"go.uber.org/fx"

	"apnadoctor/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController))
