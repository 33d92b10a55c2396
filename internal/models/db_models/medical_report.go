package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MedicalReport struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename     string    `gorm:"type:varchar(255);not null"`
	OriginalName string    `gorm:"type:varchar(255);not null"`
	StoragePath  string    `gorm:"type:text;not null"`
	MimeType     string    `gorm:"type:varchar(100);not null"`
	Size         int64     `gorm:"not null"`
	UploadDate   int64     `gorm:"not null;index"`

	AIAnalysis datatypes.JSONType[*ReportAnalysis] `gorm:"type:jsonb"`
}

type ReportAnalysis struct {
	Summary         string   `json:"summary"`
	Findings        []string `json:"findings"`
	Recommendations []string `json:"recommendations"`
}
