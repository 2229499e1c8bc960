package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelapp-backend/models"
)

// TourFilter narrows a tour listing; nil fields are ignored.
type TourFilter struct {
	TourType     *models.TourType
	Country      *string
	IsActive     *bool
	StandardOnly bool
}

func (f TourFilter) apply(db *gorm.DB) *gorm.DB {
	if f.StandardOnly {
		db = db.Scopes(models.StandardTours)
	}
	if f.TourType != nil {
		db = db.Where("tour_type = ?", *f.TourType)
	}
	if f.Country != nil {
		db = db.Where("country = ?", *f.Country)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

var tourOrdering = map[string]string{"price": "price", "date_start": "date_start"}

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *models.Tour) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tour).Error; err != nil {
		return fmt.Errorf("create tour: %w", err)
	}
	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, id uint) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.WithContext(ctx).Preload("Supervisor").First(&tour, id).Error; err != nil {
		return nil, notFound(err, "tour", id)
	}
	return &tour, nil
}

func (r *TourRepository) List(ctx context.Context, filter TourFilter, opts ListOptions) (ListResult[models.Tour], error) {
	var result ListResult[models.Tour]
	db := filter.apply(r.db.WithContext(ctx).Model(&models.Tour{}))
	if err := db.Count(&result.Count).Error; err != nil {
		return result, fmt.Errorf("count tours: %w", err)
	}
	err := opts.Page.apply(db.Preload("Supervisor").Order(orderClause(opts.Ordering, tourOrdering, models.TourOrdering))).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list tours: %w", err)
	}
	return result, nil
}

// StartingOn returns the active tours whose first day is date.
func (r *TourRepository) StartingOn(ctx context.Context, date models.Date) ([]models.Tour, error) {
	var tours []models.Tour
	err := r.db.WithContext(ctx).
		Where("date_start = ? AND is_active = ?", date, true).
		Order("id ASC").
		Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("list tours starting %s: %w", date, err)
	}
	return tours, nil
}

func (r *TourRepository) Save(ctx context.Context, tour *models.Tour) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(tour).Error; err != nil {
		return fmt.Errorf("save tour #%d: %w", tour.ID, err)
	}
	return nil
}

// Delete removes the tour and its reservation links in one transaction. It
// reports false when no tour had the id.
func (r *TourRepository) Delete(ctx context.Context, id uint) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", id).Delete(&models.TourReservation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tour{}, id)
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
		return false, fmt.Errorf("delete tour #%d: %w", id, err)
	}
	return true, nil
}
