package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type IPushService interface {
	SendPush(ctx context.Context, deviceToken, title, body string) error
}

type fcmPushService struct {
	client *messaging.Client
	log    *zap.Logger
}

// NewFCMPushService logs instead of sending when credentialsFile is empty.
func NewFCMPushService(ctx context.Context, credentialsFile string, log *zap.Logger) (IPushService, error) {
	log = log.Named("push")
	if credentialsFile == "" {
		log.Warn("FIREBASE_CREDENTIALS missing, push notifications will be logged instead of sent")
		return &mockPushService{log: log}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &fcmPushService{client: client, log: log}, nil
}

func (f *fcmPushService) SendPush(ctx context.Context, deviceToken, title, body string) error {
	id, err := f.client.Send(ctx, &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		return fmt.Errorf("fcm: %w", err)
	}
	f.log.Debug("push sent", zap.String("message_id", id))
	return nil
}

type mockPushService struct {
	log *zap.Logger
}

func (m *mockPushService) SendPush(_ context.Context, _ string, title, body string) error {
	m.log.Info("mock push", zap.String("title", title), zap.String("body", body))
	return nil
}
