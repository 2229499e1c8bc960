package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelapp-backend/models"
)

// ReservationFilter narrows a reservation listing; nil fields are ignored.
type ReservationFilter struct {
	UserID      *uint
	IsConfirmed *bool
	IsActive    *bool
}

func (f ReservationFilter) apply(db *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.IsConfirmed != nil {
		db = db.Where("is_confirmed = ?", *f.IsConfirmed)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

var reservationOrdering = map[string]string{"date_of_reservation": "date_of_reservation"}

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error; err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Preload("User").First(&reservation, id).Error; err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return &reservation, nil
}

func (r *ReservationRepository) List(ctx context.Context, filter ReservationFilter, opts ListOptions) (ListResult[models.Reservation], error) {
	var result ListResult[models.Reservation]
	db := filter.apply(r.db.WithContext(ctx).Model(&models.Reservation{}))
	if err := db.Count(&result.Count).Error; err != nil {
		return result, fmt.Errorf("count reservations: %w", err)
	}
	err := opts.Page.apply(db.Preload("User").Order(orderClause(opts.Ordering, reservationOrdering, models.ReservationOrdering))).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list reservations: %w", err)
	}
	return result, nil
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *models.Reservation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(reservation).Error; err != nil {
		return fmt.Errorf("save reservation #%d: %w", reservation.ID, err)
	}
	return nil
}

// Delete removes the reservation and its tour links in one transaction. It
// reports false when no reservation had the id.
func (r *ReservationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_id = ?", id).Delete(&models.TourReservation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Reservation{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete reservation #%d: %w", id, err)
	}
	return true, nil
}
