package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apnadoctor/internal/infra"
	"apnadoctor/internal/models/db_models"
)

type ScheduledNotificationRepository interface {
	Create(ctx context.Context, s *db_models.ScheduledNotification) error
	Update(ctx context.Context, s *db_models.ScheduledNotification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.ScheduledNotification, error)
	FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// Toggle flips is_active under a row lock and returns the updated row, or nil when not found.
	Toggle(ctx context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error)
	// FindDue loads every active reminder set for clock ("HH:MM") with its owner preloaded.
	FindDue(ctx context.Context, clock string) ([]db_models.ScheduledNotification, error)
}

type scheduledNotificationRepository struct {
	db *gorm.DB
}

func NewScheduledNotificationRepository(db *gorm.DB) ScheduledNotificationRepository {
	return &scheduledNotificationRepository{db: db}
}

func (r *scheduledNotificationRepository) Create(ctx context.Context, s *db_models.ScheduledNotification) error {
	return r.db.WithContext(ctx).Omit("User").Create(s).Error
}

func (r *scheduledNotificationRepository) Update(ctx context.Context, s *db_models.ScheduledNotification) error {
	return r.db.WithContext(ctx).Omit("User").Save(s).Error
}

func (r *scheduledNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.ScheduledNotification, error) {
	var items []db_models.ScheduledNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *scheduledNotificationRepository) FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error) {
	var item db_models.ScheduledNotification
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *scheduledNotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.ScheduledNotification{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *scheduledNotificationRepository) Toggle(ctx context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error) {
	var toggled *db_models.ScheduledNotification

	err := infra.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var item db_models.ScheduledNotification
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		active := !item.IsActive
		if err := tx.Model(&item).Update("is_active", active).Error; err != nil {
			return err
		}
		item.IsActive = active
		toggled = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

func (r *scheduledNotificationRepository) FindDue(ctx context.Context, clock string) ([]db_models.ScheduledNotification, error) {
	var items []db_models.ScheduledNotification
	err := r.db.WithContext(ctx).
		Preload("User").
		Where(&db_models.ScheduledNotification{Time: clock, IsActive: true}).
		Find(&items).Error
	return items, err
}
