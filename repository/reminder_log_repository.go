package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"travelapp-backend/models"
)

type ReminderLogRepository struct {
	db *gorm.DB
}

func NewReminderLogRepository(db *gorm.DB) *ReminderLogRepository {
	return &ReminderLogRepository{db: db}
}

func (r *ReminderLogRepository) Create(ctx context.Context, entry *models.ReminderLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("log reminder: %w", err)
	}
	return nil
}

// WasSent reports whether a reminder already went out for the link and tour date.
func (r *ReminderLogRepository) WasSent(ctx context.Context, linkID uint, tourDate models.Date) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReminderLog{}).
		Where("tour_reservation_id = ? AND tour_date = ? AND status = ?", linkID, tourDate, models.ReminderStatusSent).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check reminder log: %w", err)
	}
	return count > 0, nil
}
