package db_models

import "github.com/google/uuid"

const DefaultConsentText = "I understand that Apna Doctor is an educational tool only and does not provide medical diagnosis or treatment. I will consult a qualified healthcare professional for medical advice."

// ConsentRecord is append-only.
type ConsentRecord struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ConsentGiven bool      `gorm:"not null"`
	ConsentText  string    `gorm:"type:text;not null"`
	IPAddress    string    `gorm:"type:varchar(64)"`
	UserAgent    string    `gorm:"type:text"`

	// RecordedAt orders records created within the same second.
	RecordedAt int64 `gorm:"autoCreateTime:nano;index" json:"-"`
}
