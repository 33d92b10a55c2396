package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const notificationListLimit = 20

type NotificationServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]resp.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	SendTestEmail(ctx context.Context, userID uuid.UUID) error
}

type NotificationService struct {
	repo        repositories.NotificationRepository
	accountRepo repositories.AccountRepository
	mailer      IMailService
	log         *zap.Logger
}

func NewNotificationService(
	repo repositories.NotificationRepository,
	accountRepo repositories.AccountRepository,
	mailer IMailService,
	log *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		repo:        repo,
		accountRepo: accountRepo,
		mailer:      mailer,
		log:         log.Named("notifications"),
	}
}

func (n *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]resp.NotificationResponse, error) {
	items, err := n.repo.ListRecent(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return resp.NewNotificationResponses(items), nil
}

func (n *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := n.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}

func (n *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := n.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return count, nil
}

func (n *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := n.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}

func (n *NotificationService) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := n.repo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return count, nil
}

func (n *NotificationService) SendTestEmail(ctx context.Context, userID uuid.UUID) error {
	account, err := n.accountRepo.FindById(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	if err := n.mailer.SendTestEmail(account.Email, account.FullName); err != nil {
		n.log.Error("test email failed", zap.String("account_id", account.ID.String()), zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrEmailFailed, err)
	}
	return nil
}
