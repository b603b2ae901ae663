package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/pkg/apperrors"
)

// AuthMiddleware проверяет access-токен и загружает актуальное состояние
// пользователя из БД. Роли в claims не используются для авторизации:
// блокировка аккаунта или снятие роли действуют сразу, не дожидаясь
// истечения токена.
func AuthMiddleware(tm *auth.TokenManager, userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tm.ParseAccess(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}
		if !user.IsActive() {
			apperrors.HandleError(c, apperrors.ErrAccountInactive)
			c.Abort()
			return
		}

		roles, err := roleRepo.GetActiveRoleNames(ctx, userID)
		if err != nil {
			logger.CtxWithError(ctx, "failed to load user roles", err, "user_id", userID)
			apperrors.HandleError(c, apperrors.InternalError(err))
			c.Abort()
			return
		}

		c.Set("userID", userID.String())
		c.Set("email", user.Email)
		c.Set("roles", roles)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, userID.String()))
		c.Next()
	}
}

// RequireRoles пропускает пользователей, имеющих хотя бы одну из ролей
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles := GetRoles(c)
		if !auth.HasAnyRole(userRoles, roles) {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireHierarchy пропускает пользователей с уровнем не ниже требуемого.
// Уровни ролей берутся из БД, неизвестные роли дают отказ.
func RequireHierarchy(minLevel int, roleRepo repositories.RoleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		levels, err := roleRepo.LevelsByName(c.Request.Context())
		if err != nil {
			apperrors.HandleError(c, apperrors.InternalError(err))
			c.Abort()
			return
		}

		if !auth.MeetsHierarchy(GetRoles(c), minLevel, levels) {
			apperrors.HandleError(c, apperrors.ErrInsufficientHierarchy)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

// GetRoles извлекает роли пользователя из контекста
func GetRoles(c *gin.Context) []string {
	rolesVal, exists := c.Get("roles")
	if !exists {
		return nil
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return nil
	}
	return roles
}
