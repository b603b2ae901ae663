package routes

import (
	"github.com/gin-gonic/gin"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/handlers"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/repositories"
)

// Deps - зависимости для регистрации маршрутов
type Deps struct {
	Handlers     *handlers.AppHandlers
	TokenManager *auth.TokenManager
	UserRepo     repositories.UserRepository
	RoleRepo     repositories.RoleRepository
}

// Setup регистрирует все маршруты приложения
func Setup(r *gin.Engine, deps Deps) {
	r.GET("/health", deps.Handlers.Health.Check)

	authRequired := middleware.AuthMiddleware(deps.TokenManager, deps.UserRepo, deps.RoleRepo)

	api := r.Group("/api/v1")
	{
		// Публичные маршруты аутентификации
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", deps.Handlers.Auth.Register)
			authGroup.POST("/login", deps.Handlers.Auth.Login)
			authGroup.POST("/refresh", deps.Handlers.Auth.Refresh)
			authGroup.POST("/logout", deps.Handlers.Auth.Logout)
			authGroup.POST("/verify-email", deps.Handlers.Auth.VerifyEmail)
			authGroup.POST("/forgot-password", deps.Handlers.Auth.ForgotPassword)
			authGroup.POST("/reset-password", deps.Handlers.Auth.ResetPassword)
			authGroup.POST("/resend-verification", deps.Handlers.Auth.ResendVerification)
			authGroup.GET("/me", authRequired, deps.Handlers.Auth.Me)
		}

		// Форма обратной связи
		api.POST("/contact", deps.Handlers.Contact.Submit)

		// Медиафайлы
		mediaGroup := api.Group("/media", authRequired)
		{
			mediaGroup.POST("", deps.Handlers.Media.Upload)
			mediaGroup.GET("", deps.Handlers.Media.List)
			mediaGroup.GET("/:id", deps.Handlers.Media.Get)
			mediaGroup.GET("/:id/url", deps.Handlers.Media.GetURL)
			mediaGroup.DELETE("/:id", deps.Handlers.Media.Delete)
		}

		// Администрирование: уровень ADMIN и выше
		adminLevel := auth.DefaultRoleLevels[auth.RoleAdmin]
		adminGroup := api.Group("/admin", authRequired, middleware.RequireHierarchy(adminLevel, deps.RoleRepo))
		{
			adminGroup.GET("/users", deps.Handlers.User.List)
			adminGroup.POST("/users", deps.Handlers.User.Create)
			adminGroup.PATCH("/users/:id/status", deps.Handlers.User.UpdateStatus)
			adminGroup.PATCH("/users/:id/roles", deps.Handlers.User.UpdateRoles)
		}
	}
}
