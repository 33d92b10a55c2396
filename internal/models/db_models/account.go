package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Account struct {
	BaseModel
	FullName     string `gorm:"type:varchar(120);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsAdmin      bool   `gorm:"default:false"`

	Age         int            `gorm:"default:0"`
	Gender      string         `gorm:"type:varchar(20)"`
	Height      float64        `gorm:"default:0"`
	Weight      float64        `gorm:"default:0"`
	BloodType   string         `gorm:"type:varchar(5)"`
	HealthGoals pq.StringArray `gorm:"type:text[]"`
	PhoneNumber string         `gorm:"type:varchar(20)"`
	FCMToken    string         `gorm:"type:text"`

	EmailNotifications bool `gorm:"default:true"`
	SMSNotifications   bool `gorm:"default:false"`
	PushNotifications  bool `gorm:"default:false"`
}

func (a *Account) Role() string {
	if a.IsAdmin {
		return "admin"
	}
	return "user"
}

type LoginEvent struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	IPAddress string    `gorm:"type:varchar(64)"`
	UserAgent string    `gorm:"type:text"`
}
