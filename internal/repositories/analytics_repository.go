package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "apnadoctor/internal/models/db_models"
)

type AnalyticsRepository interface {
	// RecentSessions returns at most limit sessions for the user, newest first.
	RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.SymptomSession, error)
	CountSessions(ctx context.Context, userID uuid.UUID) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.SymptomSession, error) {
	var sessions []dbm.SymptomSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *analyticsRepository) CountSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.SymptomSession{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
