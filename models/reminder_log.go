// models/reminder_log.go
package models

import (
	"time"
)

const (
	ReminderStatusSent   = "sent"
	ReminderStatusFailed = "failed"
)

// ReminderLog records one tour reminder delivery attempt.
type ReminderLog struct {
	ID                uint   `gorm:"primaryKey"`
	TourReservationID uint   `gorm:"index:idx_reminder_link_date,priority:1;not null"`
	TourDate          Date   `gorm:"index:idx_reminder_link_date,priority:2;not null"`
	UserID            uint   `gorm:"index;not null"`
	TourID            uint   `gorm:"index;not null"`
	Message           string `gorm:"type:text"`
	Status            string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage      string `gorm:"type:text"`
	Channel           string `gorm:"type:varchar(20)"` // sms
	SentAt            time.Time
}
