package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"apnadoctor/internal/models/db_models"
)

type MedicalReportRepository interface {
	Create(ctx context.Context, r *db_models.MedicalReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.MedicalReport, error)
	FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.MedicalReport, error)
	SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *db_models.ReportAnalysis) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type medicalReportRepository struct {
	db *gorm.DB
}

func NewMedicalReportRepository(db *gorm.DB) MedicalReportRepository {
	return &medicalReportRepository{db: db}
}

func (m *medicalReportRepository) Create(ctx context.Context, r *db_models.MedicalReport) error {
	return m.db.WithContext(ctx).Create(r).Error
}

func (m *medicalReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.MedicalReport, error) {
	var items []db_models.MedicalReport
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&items).Error
	return items, err
}

func (m *medicalReportRepository) FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.MedicalReport, error) {
	var item db_models.MedicalReport
	err := m.db.WithContext(ctx).
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

func (m *medicalReportRepository) SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *db_models.ReportAnalysis) error {
	return m.db.WithContext(ctx).
		Model(&db_models.MedicalReport{}).
		Where("id = ?", id).
		Update("ai_analysis", datatypes.NewJSONType(analysis)).Error
}

func (m *medicalReportRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := m.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.MedicalReport{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
