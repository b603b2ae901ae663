package services

import (
	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/email"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/storage"
)

// ServiceContainer - все сервисы приложения в одном месте
type ServiceContainer struct {
	Auth    AuthService
	User    UserService
	Contact ContactService
	Media   MediaService
	Email   EmailService
}

// ContainerDeps - зависимости для сборки контейнера
type ContainerDeps struct {
	UserRepo    repositories.UserRepository
	RoleRepo    repositories.RoleRepository
	TokenRepo   repositories.RefreshTokenRepository
	ContactRepo repositories.ContactRepository
	MediaRepo   repositories.MediaRepository

	TokenManager  *auth.TokenManager
	EmailProvider email.Provider
	Templates     *email.TemplateManager
	Storage       storage.Storage

	FrontendURL  string
	AdminEmail   string
	UploadLimits UploadLimits
}

// NewServiceContainer собирает контейнер сервисов
func NewServiceContainer(deps ContainerDeps) *ServiceContainer {
	emailService := NewEmailService(deps.EmailProvider, deps.Templates, deps.FrontendURL, deps.AdminEmail)

	return &ServiceContainer{
		Auth:    NewAuthService(deps.UserRepo, deps.RoleRepo, deps.TokenRepo, deps.TokenManager, emailService),
		User:    NewUserService(deps.UserRepo, deps.RoleRepo, deps.TokenRepo),
		Contact: NewContactService(deps.ContactRepo, emailService),
		Media:   NewMediaService(deps.MediaRepo, deps.Storage, deps.UploadLimits),
		Email:   emailService,
	}
}
