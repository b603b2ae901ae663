package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/storage"
	"learnhub_backend/pkg/apperrors"
)

// Срок жизни подписанной ссылки на приватный файл
const signedURLTTL = time.Hour

// Допустимые mime-типы по категориям
var allowedMimeTypes = map[string]models.MediaType{
	"image/jpeg":         models.MediaTypeImage,
	"image/png":          models.MediaTypeImage,
	"image/gif":          models.MediaTypeImage,
	"image/webp":         models.MediaTypeImage,
	"video/mp4":          models.MediaTypeVideo,
	"video/webm":         models.MediaTypeVideo,
	"application/pdf":    models.MediaTypeDocument,
	"application/msword": models.MediaTypeDocument,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": models.MediaTypeDocument,
	"text/plain": models.MediaTypeDocument,
}

// UploadLimits - максимальные размеры файлов по категориям
type UploadLimits struct {
	MaxImageSize    int64
	MaxVideoSize    int64
	MaxDocumentSize int64
}

// UploadInput - содержимое и метаданные загружаемого файла
type UploadInput struct {
	FileName    string
	MimeType    string
	Size        int64
	Reader      io.Reader
	EntityType  string
	EntityID    *uuid.UUID
	Description string
	Alt         string
	IsPublic    bool
	UploaderIP  string
}

// MediaService - загрузка и выдача файлов
type MediaService interface {
	Upload(ctx context.Context, uploaderID uuid.UUID, input *UploadInput) (*dto.MediaResponse, error)
	GetByID(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) (*dto.MediaResponse, error)
	List(ctx context.Context, requesterID uuid.UUID, query *dto.ListMediaQuery) (*dto.MediaListResponse, error)
	GetSignedURL(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) (*dto.SignedURLResponse, error)
	Delete(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) error
}

type MediaServiceImpl struct {
	mediaRepo repositories.MediaRepository
	store     storage.Storage
	limits    UploadLimits
}

func NewMediaService(mediaRepo repositories.MediaRepository, store storage.Storage, limits UploadLimits) MediaService {
	return &MediaServiceImpl{
		mediaRepo: mediaRepo,
		store:     store,
		limits:    limits,
	}
}

// Upload валидирует файл, кладет его в хранилище и сохраняет метаданные
func (s *MediaServiceImpl) Upload(ctx context.Context, uploaderID uuid.UUID, input *UploadInput) (*dto.MediaResponse, error) {
	mediaType, ok := allowedMimeTypes[input.MimeType]
	if !ok {
		return nil, apperrors.ErrInvalidFileType
	}
	if input.Size > s.maxSize(mediaType) {
		return nil, apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	fileName := uuid.NewString() + ext
	storageKey := fmt.Sprintf("%s/%s/%s",
		mediaType, time.Now().Format("2006/01"), fileName)

	if err := s.store.Save(ctx, storageKey, input.Reader, input.Size, input.MimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	media := &models.Media{
		FileName:     fileName,
		OriginalName: input.FileName,
		MimeType:     input.MimeType,
		FileSize:     input.Size,
		Type:         mediaType,
		Status:       models.MediaStatusActive,
		StorageKey:   storageKey,
		EntityType:   input.EntityType,
		EntityID:     input.EntityID,
		Description:  input.Description,
		Alt:          input.Alt,
		UploadedByID: uploaderID,
		UploadedByIP: input.UploaderIP,
		IsPublic:     input.IsPublic,
	}
	if media.IsPublic {
		media.StorageURL = s.store.GetURL(storageKey)
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		// Осиротевший файл убирается из хранилища
		if delErr := s.store.Delete(ctx, storageKey); delErr != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned file", delErr, "key", storageKey)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "media uploaded",
		"media_id", media.ID, "type", mediaType, "size", input.Size)
	return dto.NewMediaResponse(media), nil
}

func (s *MediaServiceImpl) maxSize(t models.MediaType) int64 {
	switch t {
	case models.MediaTypeImage:
		return s.limits.MaxImageSize
	case models.MediaTypeVideo:
		return s.limits.MaxVideoSize
	default:
		return s.limits.MaxDocumentSize
	}
}

// GetByID возвращает файл владельцу, публичные файлы доступны всем
func (s *MediaServiceImpl) GetByID(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) (*dto.MediaResponse, error) {
	media, err := s.findAccessible(ctx, requesterID, mediaID, true)
	if err != nil {
		return nil, err
	}
	return dto.NewMediaResponse(media), nil
}

func (s *MediaServiceImpl) List(ctx context.Context, requesterID uuid.UUID, query *dto.ListMediaQuery) (*dto.MediaListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	// Пользователь видит только собственные загрузки
	filter := repositories.MediaFilter{
		UploadedByID: &requesterID,
		EntityType:   query.EntityType,
		Offset:       (page - 1) * limit,
		Limit:        limit,
	}
	if query.Type != "" {
		t := models.MediaType(query.Type)
		filter.Type = &t
	}
	if query.EntityID != "" {
		id, err := uuid.Parse(query.EntityID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid entity_id")
		}
		filter.EntityID = &id
	}

	items, total, err := s.mediaRepo.FindWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MediaResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *dto.NewMediaResponse(&items[i]))
	}
	return &dto.MediaListResponse{
		Items: responses,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetSignedURL выдает временную ссылку на файл
func (s *MediaServiceImpl) GetSignedURL(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) (*dto.SignedURLResponse, error) {
	media, err := s.findAccessible(ctx, requesterID, mediaID, true)
	if err != nil {
		return nil, err
	}

	url, err := s.store.GetSignedURL(media.StorageKey, signedURLTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.SignedURLResponse{
		URL:       url,
		ExpiresAt: time.Now().Add(signedURLTTL),
	}, nil
}

// Delete удаляет файл из хранилища и мягко удаляет запись.
// Доступно только владельцу.
func (s *MediaServiceImpl) Delete(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID) error {
	media, err := s.findAccessible(ctx, requesterID, mediaID, false)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, media.StorageKey); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mediaRepo.SoftDelete(ctx, media.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "media deleted", "media_id", media.ID)
	return nil
}

// findAccessible находит файл и проверяет право доступа.
// allowPublic разрешает чужие публичные файлы (чтение, но не удаление).
func (s *MediaServiceImpl) findAccessible(ctx context.Context, requesterID uuid.UUID, mediaID uuid.UUID, allowPublic bool) (*models.Media, error) {
	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if media.UploadedByID != requesterID {
		if !allowPublic || !media.IsPublic {
			return nil, apperrors.ErrMediaAccess
		}
	}
	return media, nil
}
