package services

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type ISMSService interface {
	SendSMS(ctx context.Context, to, body string) error
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

type twilioSMSService struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

// NewTwilioSMSService falls back to a logging sender when credentials are incomplete.
func NewTwilioSMSService(cfg TwilioConfig, log *zap.Logger) ISMSService {
	log = log.Named("sms")
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		log.Warn("Twilio credentials missing, SMS will be logged instead of sent")
		return &mockSMSService{log: log}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &twilioSMSService{client: client, from: cfg.From, log: log}
}

func (t *twilioSMSService) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	if resp.Sid != nil {
		t.log.Info("sms sent", zap.String("sid", *resp.Sid))
	}
	return nil
}

type mockSMSService struct {
	log *zap.Logger
}

func (m *mockSMSService) SendSMS(_ context.Context, to, body string) error {
	m.log.Info("mock sms", zap.String("to", to), zap.String("body", body))
	return nil
}
