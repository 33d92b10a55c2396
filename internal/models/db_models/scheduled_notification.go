package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type ScheduledNotification struct {
	BaseModel
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Label         string         `gorm:"type:varchar(200);not null"`
	Time          string         `gorm:"type:char(5);not null;index:idx_schedule_time_active,priority:1"`
	Channels      pq.StringArray `gorm:"type:text[]"`
	ReminderEmail string         `gorm:"type:varchar(255)"`
	IsActive      bool           `gorm:"not null;default:true;index:idx_schedule_time_active,priority:2"`

	User Account `gorm:"foreignKey:UserID"`
}

func (s *ScheduledNotification) HasChannel(channel string) bool {
	for _, c := range s.Channels {
		if c == channel {
			return true
		}
	}
	return false
}
