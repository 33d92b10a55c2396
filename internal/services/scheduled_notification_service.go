package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

type ScheduledNotificationServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]resp.ScheduleResponse, error)
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateScheduleRequest) (*resp.ScheduleResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateScheduleRequest) (*resp.ScheduleResponse, error)
	Toggle(ctx context.Context, userID, id uuid.UUID) (*resp.ScheduleResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ScheduledNotificationService struct {
	repo        repositories.ScheduledNotificationRepository
	accountRepo repositories.AccountRepository
}

func NewScheduledNotificationService(
	repo repositories.ScheduledNotificationRepository,
	accountRepo repositories.AccountRepository,
) ScheduledNotificationServiceInterface {
	return &ScheduledNotificationService{repo: repo, accountRepo: accountRepo}
}

// NormalizeChannels defaults an empty list to email, dedups, and rejects unknown channels.
func NormalizeChannels(channels []string) ([]string, error) {
	if len(channels) == 0 {
		return []string{db_models.ChannelEmail}, nil
	}
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		ch = strings.ToLower(strings.TrimSpace(ch))
		if ch != db_models.ChannelEmail && ch != db_models.ChannelSMS {
			return nil, utils.ErrInvalidChannel
		}
		out = append(out, ch)
	}
	return lo.Uniq(out), nil
}

func (s *ScheduledNotificationService) List(ctx context.Context, userID uuid.UUID) ([]resp.ScheduleResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return resp.NewScheduleResponses(items), nil
}

func (s *ScheduledNotificationService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateScheduleRequest) (*resp.ScheduleResponse, error) {
	if !utils.IsValidClock(request.Time) {
		return nil, utils.ErrInvalidTime
	}
	channels, err := NormalizeChannels(request.Channels)
	if err != nil {
		return nil, err
	}

	schedule := &db_models.ScheduledNotification{
		UserID:        userID,
		Label:         strings.TrimSpace(request.Label),
		Time:          request.Time,
		Channels:      pq.StringArray(channels),
		ReminderEmail: strings.TrimSpace(request.ReminderEmail),
		IsActive:      true,
	}

	if schedule.ReminderEmail == "" && schedule.HasChannel(db_models.ChannelEmail) {
		account, err := s.accountRepo.FindById(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if account == nil {
			return nil, utils.ErrAccountNotFound
		}
		schedule.ReminderEmail = account.Email
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := resp.NewScheduleResponse(schedule)
	return &out, nil
}

func (s *ScheduledNotificationService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateScheduleRequest) (*resp.ScheduleResponse, error) {
	schedule, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if request.Label != nil {
		schedule.Label = strings.TrimSpace(*request.Label)
	}
	if request.Time != nil {
		if !utils.IsValidClock(*request.Time) {
			return nil, utils.ErrInvalidTime
		}
		schedule.Time = *request.Time
	}
	if request.Channels != nil {
		channels, err := NormalizeChannels(*request.Channels)
		if err != nil {
			return nil, err
		}
		schedule.Channels = pq.StringArray(channels)
	}
	if request.ReminderEmail != nil {
		schedule.ReminderEmail = strings.TrimSpace(*request.ReminderEmail)
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := resp.NewScheduleResponse(schedule)
	return &out, nil
}

func (s *ScheduledNotificationService) Toggle(ctx context.Context, userID, id uuid.UUID) (*resp.ScheduleResponse, error) {
	schedule, err := s.repo.Toggle(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if schedule == nil {
		return nil, utils.ErrScheduleNotFound
	}
	out := resp.NewScheduleResponse(schedule)
	return &out, nil
}

func (s *ScheduledNotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return utils.ErrScheduleNotFound
	}
	return nil
}

func (s *ScheduledNotificationService) find(ctx context.Context, userID, id uuid.UUID) (*db_models.ScheduledNotification, error) {
	schedule, err := s.repo.FindByIdForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if schedule == nil {
		return nil, utils.ErrScheduleNotFound
	}
	return schedule, nil
}
