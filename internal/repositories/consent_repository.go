package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"apnadoctor/internal/models/db_models"
)

type ConsentRepository interface {
	Create(ctx context.Context, record *db_models.ConsentRecord) error
	// LatestGiven returns the newest record with consent_given = true, or nil.
	LatestGiven(ctx context.Context, userID uuid.UUID) (*db_models.ConsentRecord, error)
}

type consentRepository struct {
	db *gorm.DB
}

func NewConsentRepository(db *gorm.DB) ConsentRepository {
	return &consentRepository{db: db}
}

func (r *consentRepository) Create(ctx context.Context, record *db_models.ConsentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *consentRepository) LatestGiven(ctx context.Context, userID uuid.UUID) (*db_models.ConsentRecord, error) {
	var record db_models.ConsentRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND consent_given = ?", userID, true).
		Order("created_at DESC").
		Order("recorded_at DESC").
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
