package dto

import (
	"time"

	"github.com/google/uuid"

	"learnhub_backend/internal/models"
)

// UploadMediaRequest - метаданные загрузки, принимаются из multipart-формы
type UploadMediaRequest struct {
	EntityType  string `form:"entity_type" validate:"omitempty,max=100"`
	EntityID    string `form:"entity_id" validate:"omitempty,uuid"`
	Description string `form:"description" validate:"omitempty,max=1000"`
	Alt         string `form:"alt" validate:"omitempty,max=300"`
	IsPublic    bool   `form:"is_public"`
}

// ListMediaQuery - параметры выборки медиафайлов
type ListMediaQuery struct {
	Type       string `form:"type" validate:"omitempty,oneof=image video document"`
	EntityType string `form:"entity_type" validate:"omitempty,max=100"`
	EntityID   string `form:"entity_id" validate:"omitempty,uuid"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// MediaResponse - публичное представление медиафайла
type MediaResponse struct {
	ID           uuid.UUID  `json:"id"`
	FileName     string     `json:"file_name"`
	OriginalName string     `json:"original_name"`
	MimeType     string     `json:"mime_type"`
	FileSize     int64      `json:"file_size"`
	Type         string     `json:"type"`
	URL          string     `json:"url,omitempty"`
	EntityType   string     `json:"entity_type,omitempty"`
	EntityID     *uuid.UUID `json:"entity_id,omitempty"`
	Description  string     `json:"description,omitempty"`
	Alt          string     `json:"alt,omitempty"`
	IsPublic     bool       `json:"is_public"`
	UploadedByID uuid.UUID  `json:"uploaded_by_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewMediaResponse собирает ответ из модели
func NewMediaResponse(m *models.Media) *MediaResponse {
	return &MediaResponse{
		ID:           m.ID,
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		FileSize:     m.FileSize,
		Type:         string(m.Type),
		URL:          m.StorageURL,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
		Description:  m.Description,
		Alt:          m.Alt,
		IsPublic:     m.IsPublic,
		UploadedByID: m.UploadedByID,
		CreatedAt:    m.CreatedAt,
	}
}

// MediaListResponse - страница медиафайлов
type MediaListResponse struct {
	Items []MediaResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// SignedURLResponse - временная подписанная ссылка
type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
