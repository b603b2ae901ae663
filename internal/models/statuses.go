package models

// UserStatus - статус аккаунта пользователя
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending_verification"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// MediaType - тип загруженного файла
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

// MediaStatus - статус медиафайла
type MediaStatus string

const (
	MediaStatusActive  MediaStatus = "active"
	MediaStatusDeleted MediaStatus = "deleted"
)
