package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"apnadoctor/internal/models/db_models"
)

// SymptomRepository scopes every read and delete by the owning user.
type SymptomRepository interface {
	Create(ctx context.Context, session *db_models.SymptomSession) error
	AttachAnalysis(ctx context.Context, id uuid.UUID, result *db_models.TriageResult) error
	FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.SymptomSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]db_models.SymptomSession, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type symptomRepository struct {
	db *gorm.DB
}

func NewSymptomRepository(db *gorm.DB) SymptomRepository {
	return &symptomRepository{db: db}
}

func (r *symptomRepository) Create(ctx context.Context, session *db_models.SymptomSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *symptomRepository) AttachAnalysis(ctx context.Context, id uuid.UUID, result *db_models.TriageResult) error {
	return r.db.WithContext(ctx).
		Model(&db_models.SymptomSession{}).
		Where("id = ?", id).
		Update("analysis_result", datatypes.NewJSONType(result)).Error
}

func (r *symptomRepository) FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.SymptomSession, error) {
	var session db_models.SymptomSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *symptomRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]db_models.SymptomSession, error) {
	var sessions []db_models.SymptomSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *symptomRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.SymptomSession{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *symptomRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.SymptomSession{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
