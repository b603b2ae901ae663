package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internal/models"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository - хранение отпечатков refresh-токенов
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	DeleteByHash(ctx context.Context, hash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	CleanExpired(ctx context.Context) (int64, error)
}

type refreshTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

func (r *refreshTokenRepositoryImpl) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepositoryImpl) FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).First(&token, "token_hash = ?", hash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepositoryImpl) DeleteByHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).
		Delete(&models.RefreshToken{}, "token_hash = ?", hash).Error
}

// DeleteByUserID отзывает все refresh-токены пользователя
func (r *refreshTokenRepositoryImpl) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

// CleanExpired удаляет просроченные отпечатки, возвращает число удаленных
func (r *refreshTokenRepositoryImpl) CleanExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.RefreshToken{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}
