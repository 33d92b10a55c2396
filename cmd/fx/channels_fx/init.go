package channels_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/internal/config"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(provideSMSService, providePushService)

func provideSMSService(cfg config.Config, log *zap.Logger) services.ISMSService {
	return services.NewTwilioSMSService(services.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		From:       cfg.Twilio.From,
	}, log)
}

func providePushService(cfg config.Config, log *zap.Logger) (services.IPushService, error) {
	return services.NewFCMPushService(context.Background(), cfg.FirebaseCredentials, log)
}
