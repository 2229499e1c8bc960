package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelapp-backend/models"
)

// TourReservationFilter narrows a link listing; nil fields are ignored.
type TourReservationFilter struct {
	ReservationID  *uint
	TourID         *uint
	IsPriceReduced *bool
	IsActive       *bool
}

func (f TourReservationFilter) apply(db *gorm.DB) *gorm.DB {
	if f.ReservationID != nil {
		db = db.Where("reservation_id = ?", *f.ReservationID)
	}
	if f.TourID != nil {
		db = db.Where("tour_id = ?", *f.TourID)
	}
	if f.IsPriceReduced != nil {
		db = db.Where("is_price_reduced = ?", *f.IsPriceReduced)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

var tourReservationOrdering = map[string]string{"reservation": "reservation_id", "tour": "tour_id"}

type TourReservationRepository struct {
	db *gorm.DB
}

func NewTourReservationRepository(db *gorm.DB) *TourReservationRepository {
	return &TourReservationRepository{db: db}
}

func (r *TourReservationRepository) Create(ctx context.Context, link *models.TourReservation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return fmt.Errorf("create tour reservation: %w", err)
	}
	return nil
}

func (r *TourReservationRepository) GetByID(ctx context.Context, id uint) (*models.TourReservation, error) {
	var link models.TourReservation
	err := r.db.WithContext(ctx).Preload("Reservation").Preload("Tour").First(&link, id).Error
	if err != nil {
		return nil, notFound(err, "tour reservation", id)
	}
	return &link, nil
}

func (r *TourReservationRepository) List(ctx context.Context, filter TourReservationFilter, opts ListOptions) (ListResult[models.TourReservation], error) {
	var result ListResult[models.TourReservation]
	db := filter.apply(r.db.WithContext(ctx).Model(&models.TourReservation{}))
	if err := db.Count(&result.Count).Error; err != nil {
		return result, fmt.Errorf("count tour reservations: %w", err)
	}
	err := opts.Page.apply(db.Preload("Reservation").Preload("Tour").
		Order(orderClause(opts.Ordering, tourReservationOrdering, models.TourReservationOrdering))).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list tour reservations: %w", err)
	}
	return result, nil
}

// RemindableForTour returns the active links of a tour whose reservation is
// active and confirmed, with the reservation owner loaded.
func (r *TourReservationRepository) RemindableForTour(ctx context.Context, tourID uint) ([]models.TourReservation, error) {
	var links []models.TourReservation
	err := r.db.WithContext(ctx).
		Joins("JOIN reservations ON reservations.id = tour_reservations.reservation_id").
		Where("tour_reservations.tour_id = ? AND tour_reservations.is_active = ?", tourID, true).
		Where("reservations.is_active = ? AND reservations.is_confirmed = ?", true, true).
		Preload("Reservation.User").
		Order("tour_reservations.id ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list remindable links of tour #%d: %w", tourID, err)
	}
	return links, nil
}

func (r *TourReservationRepository) Save(ctx context.Context, link *models.TourReservation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(link).Error; err != nil {
		return fmt.Errorf("save tour reservation #%d: %w", link.ID, err)
	}
	return nil
}

// Delete reports false when no link had the id.
func (r *TourReservationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.TourReservation{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete tour reservation #%d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
