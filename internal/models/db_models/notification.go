package db_models

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationAlert    NotificationType = "alert"
	NotificationReminder NotificationType = "reminder"
	NotificationSystem   NotificationType = "system"
)

type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title   string           `gorm:"type:varchar(200);not null"`
	Message string           `gorm:"type:text;not null"`
	Type    NotificationType `gorm:"type:varchar(16);not null;default:'info'"`
	IsRead  bool             `gorm:"not null;default:false"`
}
