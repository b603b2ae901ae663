package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internal/models"
)

var ErrMediaNotFound = errors.New("media not found")

// MediaFilter - фильтр для выборки медиафайлов
type MediaFilter struct {
	UploadedByID *uuid.UUID
	Type         *models.MediaType
	EntityType   string
	EntityID     *uuid.UUID
	Offset       int
	Limit        int
}

// MediaRepository - доступ к метаданным загруженных файлов
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	FindWithFilter(ctx context.Context, filter MediaFilter) ([]models.Media, int64, error)
	Update(ctx context.Context, media *models.Media) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type mediaRepositoryImpl struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepositoryImpl{db: db}
}

func (r *mediaRepositoryImpl) Create(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// FindByID не возвращает мягко удаленные файлы
func (r *mediaRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepositoryImpl) FindWithFilter(ctx context.Context, filter MediaFilter) ([]models.Media, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Media{}).Where("deleted_at IS NULL")

	if filter.UploadedByID != nil {
		query = query.Where("uploaded_by_id = ?", *filter.UploadedByID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var items []models.Media
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mediaRepositoryImpl) Update(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Save(media).Error
}

// SoftDelete помечает файл удаленным, запись остается в БД
func (r *mediaRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"status":     models.MediaStatusDeleted,
		}).Error
}
