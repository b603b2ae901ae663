package repositories

import (
	"context"

	"gorm.io/gorm"

	"learnhub_backend/internal/models"
)

// ContactRepository - хранение сообщений формы обратной связи
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context, offset, limit int) ([]models.ContactMessage, int64, error)
}

type contactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepositoryImpl{db: db}
}

func (r *contactRepositoryImpl) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepositoryImpl) List(ctx context.Context, offset, limit int) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
