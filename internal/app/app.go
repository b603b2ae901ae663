package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"learnhub_backend/database"
	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/email"
	"learnhub_backend/internal/handlers"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/routes"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/storage"
	"learnhub_backend/internal/validator"
)

// Run собирает приложение и запускает HTTP-сервер
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	router, err := SetupRouter(cfg, db)
	if err != nil {
		return err
	}

	go cleanExpiredTokens(repositories.NewRefreshTokenRepository(db))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// SetupRouter собирает gin-роутер со всеми зависимостями
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	mediaRepo := repositories.NewMediaRepository(db)

	tokenManager, err := auth.NewTokenManager(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, err
	}

	templates, err := email.NewTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, err
	}

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		emailProvider = email.NewGomailProvider(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername, cfg.Email.SMTPPassword,
			cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		logger.Warn("smtp is not configured, emails will not be sent")
		emailProvider = email.NewNoopProvider()
	}

	store, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	if err := seedRoles(db, roleRepo); err != nil {
		return nil, err
	}
	if err := seedFirstSuperAdmin(cfg, userRepo, roleRepo); err != nil {
		return nil, err
	}

	svc := services.NewServiceContainer(services.ContainerDeps{
		UserRepo:      userRepo,
		RoleRepo:      roleRepo,
		TokenRepo:     tokenRepo,
		ContactRepo:   contactRepo,
		MediaRepo:     mediaRepo,
		TokenManager:  tokenManager,
		EmailProvider: emailProvider,
		Templates:     templates,
		Storage:       store,
		FrontendURL:   cfg.Email.FrontendURL,
		AdminEmail:    cfg.Email.AdminEmail,
		UploadLimits: services.UploadLimits{
			MaxImageSize:    cfg.Upload.MaxImageSize,
			MaxVideoSize:    cfg.Upload.MaxVideoSize,
			MaxDocumentSize: cfg.Upload.MaxDocumentSize,
		},
	})

	v := validator.New()
	appHandlers := handlers.NewAppHandlers(v, svc, db)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.Setup(router, routes.Deps{
		Handlers:     appHandlers,
		TokenManager: tokenManager,
		UserRepo:     userRepo,
		RoleRepo:     roleRepo,
	})

	return router, nil
}

// Фоновая очистка просроченных отпечатков refresh-токенов
func cleanExpiredTokens(tokenRepo repositories.RefreshTokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		deleted, err := tokenRepo.CleanExpired(ctx)
		cancel()
		if err != nil {
			logger.Error("failed to clean expired refresh tokens", "error", err.Error())
			continue
		}
		if deleted > 0 {
			logger.Info("expired refresh tokens cleaned", "count", deleted)
		}
	}
}

// seedRoles создает или обновляет системные роли
func seedRoles(db *gorm.DB, roleRepo repositories.RoleRepository) error {
	ctx := context.Background()
	for name, level := range auth.DefaultRoleLevels {
		role := &models.Role{
			Name:           name,
			DisplayName:    auth.DefaultRoleDisplayNames[name],
			HierarchyLevel: level,
			IsActive:       true,
		}
		if err := roleRepo.Upsert(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	return nil
}

// seedFirstSuperAdmin создает первого суперадмина, если он задан в
// конфигурации и еще не существует
func seedFirstSuperAdmin(cfg *config.Config, userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	if _, err := userRepo.FindByEmail(ctx, cfg.FirstAdminEmail); err == nil {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:           cfg.FirstAdminEmail,
		PasswordHash:    passwordHash,
		FirstName:       "Super",
		LastName:        "Admin",
		Status:          models.UserStatusActive,
		IsEmailVerified: true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create first admin: %w", err)
	}

	role, err := roleRepo.FindByName(ctx, auth.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if err := roleRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return err
	}

	logger.Info("first super admin created", "email", cfg.FirstAdminEmail)
	return nil
}
