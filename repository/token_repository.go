package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelapp-backend/models"
)

// RefreshTokenRepository tracks issued refresh tokens by hash.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(token).Error; err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// FindValid returns gorm.ErrRecordNotFound when the hash is unknown or expired.
func (r *RefreshTokenRepository) FindValid(ctx context.Context, hash string, now time.Time) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", hash, now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *RefreshTokenRepository) DeleteByHash(ctx context.Context, hash string) (bool, error) {
	result := r.db.WithContext(ctx).Where("token_hash = ?", hash).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return false, fmt.Errorf("revoke refresh token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// PurgeExpired deletes every token expired at now and returns how many went.
func (r *RefreshTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
