package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelapp-backend/models"
)

// UserRepository stores users and cascades their deletion.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var userOrdering = map[string]string{"email": "email"}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetByUsername returns gorm.ErrRecordNotFound when no user has the name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, opts ListOptions) (ListResult[models.User], error) {
	var result ListResult[models.User]
	db := r.db.WithContext(ctx).Model(&models.User{})
	if err := db.Count(&result.Count).Error; err != nil {
		return result, fmt.Errorf("count users: %w", err)
	}
	err := opts.Page.apply(db.Order(orderClause(opts.Ordering, userOrdering, "id ASC"))).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("save user #%d: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(user).Update("last_login", user.LastLogin).Error
}

// Delete removes the user with their reservations, supervised tours, the links
// of both and their refresh tokens. It reports false when no user had the id.
func (r *UserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservations := tx.Model(&models.Reservation{}).Select("id").Where("user_id = ?", id)
		tours := tx.Model(&models.Tour{}).Select("id").Where("supervisor_id = ?", id)
		if err := tx.Where("reservation_id IN (?) OR tour_id IN (?)", reservations, tours).
			Delete(&models.TourReservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supervisor_id = ?", id).Delete(&models.Tour{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
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
		return false, fmt.Errorf("delete user #%d: %w", id, err)
	}
	return true, nil
}
