package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Media - загруженный файл в объектном хранилище
type Media struct {
	BaseModel
	FileName     string      `gorm:"not null" json:"file_name"`
	OriginalName string      `gorm:"not null" json:"original_name"`
	MimeType     string      `gorm:"not null" json:"mime_type"`
	FileSize     int64       `gorm:"not null" json:"file_size"`
	Type         MediaType   `gorm:"type:varchar(16);not null;index" json:"type"`
	Status       MediaStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`

	// Ключ внутри хранилища и публичный URL (если файл публичный)
	StorageKey string `gorm:"uniqueIndex;not null" json:"-"`
	StorageURL string `json:"url,omitempty"`

	// Привязка к сущности предметной области (опционально)
	EntityType string     `gorm:"index:idx_media_entity" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index:idx_media_entity" json:"entity_id,omitempty"`

	Description string `json:"description,omitempty"`
	Alt         string `json:"alt,omitempty"`

	UploadedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"uploaded_by_id"`
	UploadedByIP string    `json:"-"`
	IsPublic     bool      `gorm:"not null;default:false" json:"is_public"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	DeletedAt *time.Time `gorm:"index" json:"-"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"-"`
}

func (Media) TableName() string {
	return "media"
}

// IsDeleted проверяет мягкое удаление
func (m *Media) IsDeleted() bool {
	return m.DeletedAt != nil || m.Status == MediaStatusDeleted
}
