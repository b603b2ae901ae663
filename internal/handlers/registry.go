package handlers

import (
	"gorm.io/gorm"

	"learnhub_backend/internal/services"
	"learnhub_backend/internal/validator"
)

// AppHandlers - все обработчики приложения
type AppHandlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Contact *ContactHandler
	Media   *MediaHandler
	Health  *HealthHandler
}

// NewAppHandlers собирает обработчики
func NewAppHandlers(v *validator.Validator, svc *services.ServiceContainer, db *gorm.DB) *AppHandlers {
	return &AppHandlers{
		Auth:    NewAuthHandler(v, svc.Auth),
		User:    NewUserHandler(v, svc.User),
		Contact: NewContactHandler(v, svc.Contact),
		Media:   NewMediaHandler(v, svc.Media),
		Health:  NewHealthHandler(db),
	}
}
