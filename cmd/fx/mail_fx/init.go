package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/internal/config"
	"apnadoctor/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config, log *zap.Logger) (services.IMailService, error) {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		FromName:   "Apna Doctor",
		UseSSL:     cfg.SMTP.UseSSL,
		RequireTLS: !cfg.SMTP.UseSSL,

		AppName:    "Apna Doctor",
		AppBaseURL: cfg.AppBaseURL,
	}

	return services.NewSMTPMailService(smtpCfg, log)
}
