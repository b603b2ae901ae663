package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"
)

// Срок жизни токена сброса пароля
const passwordResetTTL = 15 * time.Minute

// AuthService - регистрация, вход и жизненный цикл сессий
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ResendVerification(ctx context.Context, emailAddr string) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	roleRepo     repositories.RoleRepository
	tokenRepo    repositories.RefreshTokenRepository
	tokenManager *auth.TokenManager
	emailService EmailService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	tokenRepo repositories.RefreshTokenRepository,
	tokenManager *auth.TokenManager,
	emailService EmailService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokenRepo:    tokenRepo,
		tokenManager: tokenManager,
		emailService: emailService,
	}
}

// Register создает аккаунт со статусом pending_verification, назначает
// запрошенные роли (STUDENT при пустом списке) и отправляет письмо подтверждения
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verifyToken, err := auth.GenerateSecureToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:                  req.Email,
		PasswordHash:           passwordHash,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Status:                 models.UserStatusPending,
		EmailVerificationToken: &verifyToken,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	roleNames := req.Roles
	if len(roleNames) == 0 {
		roleNames = []string{auth.RoleStudent}
	}

	var assigned []string
	roles, err := s.roleRepo.FindByNames(ctx, roleNames)
	if err != nil {
		logger.CtxWithError(ctx, "failed to resolve initial roles", err, "user_id", user.ID)
	}
	for _, role := range roles {
		if err := s.roleRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			logger.CtxWithError(ctx, "failed to assign role", err, "user_id", user.ID, "role", role.Name)
			continue
		}
		assigned = append(assigned, role.Name)
	}

	// Письмо уходит в фоне, ошибка отправки не блокирует регистрацию
	go func(u models.User, token string) {
		if err := s.emailService.SendVerificationEmail(context.Background(), &u, token); err != nil {
			logger.WithError(err).Error("failed to send verification email", "email", u.Email)
		}
	}(*user, verifyToken)

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return dto.NewUserResponse(user, assigned), nil
}

// Login проверяет учетные данные и выдает пару токенов
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, apperrors.ErrAccountInactive
	}

	roles, err := s.roleRepo.GetActiveRoleNames(ctx, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pair, err := s.issueTokens(ctx, user, roles)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.CtxWithError(ctx, "failed to update last login", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
		User:             dto.NewUserResponse(user, roles),
	}, nil
}

// issueTokens выпускает пару и сохраняет отпечаток refresh-токена
func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *models.User, roles []string) (*auth.TokenPair, error) {
	pair, err := s.tokenManager.GeneratePair(user.ID, user.Email, roles)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashRefreshToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pair, nil
}

// RefreshTokens ротирует пару: старый отпечаток удаляется, выдается новая пара.
// Токен без отпечатка в БД считается отозванным.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	hash := auth.HashRefreshToken(refreshToken)
	record, err := s.tokenRepo.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if record.IsExpired() {
		_ = s.tokenRepo.DeleteByHash(ctx, hash)
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID != record.UserID {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.tokenRepo.DeleteByHash(ctx, hash); err != nil {
		return nil, apperrors.InternalError(err)
	}

	roles, err := s.roleRepo.GetActiveRoleNames(ctx, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pair, err := s.issueTokens(ctx, user, roles)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

// Logout отзывает refresh-токен. Повторный вызов не считается ошибкой.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	hash := auth.HashRefreshToken(refreshToken)
	if err := s.tokenRepo.DeleteByHash(ctx, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail активирует аккаунт по токену из письма
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidVerifyToken
		}
		return nil, apperrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return nil, apperrors.ErrEmailAlreadyVerified
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	if user.Status == models.UserStatusPending {
		user.Status = models.UserStatusActive
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	go func(u models.User) {
		if err := s.emailService.SendWelcomeEmail(context.Background(), &u); err != nil {
			logger.WithError(err).Error("failed to send welcome email", "email", u.Email)
		}
	}(*user)

	roles, err := s.roleRepo.GetActiveRoleNames(ctx, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return dto.NewUserResponse(user, roles), nil
}

// ForgotPassword запускает сброс пароля. Не раскрывает, существует ли email:
// для неизвестного адреса молча завершается успехом.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateSecureToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expires := time.Now().Add(passwordResetTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}

	go func(u models.User, t string) {
		ttl := int(passwordResetTTL.Minutes())
		if err := s.emailService.SendPasswordResetEmail(context.Background(), &u, t, ttl); err != nil {
			logger.WithError(err).Error("failed to send password reset email", "email", u.Email)
		}
	}(*user, token)

	logger.CtxInfo(ctx, "password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword устанавливает новый пароль по одноразовому токену
// и отзывает все refresh-токены пользователя
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return apperrors.ErrInvalidResetToken
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = passwordHash
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil

	// Токен пришел на почту пользователя, владение адресом подтверждено
	if user.Status == models.UserStatusPending {
		user.Status = models.UserStatusActive
		user.IsEmailVerified = true
		user.EmailVerificationToken = nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}

	// Смена пароля разлогинивает все устройства
	if err := s.tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		logger.CtxWithError(ctx, "failed to revoke refresh tokens", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

// ResendVerification повторно отправляет письмо подтверждения.
// Для неизвестного адреса молча завершается успехом.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	token, err := auth.GenerateSecureToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.EmailVerificationToken = &token
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}

	go func(u models.User, t string) {
		if err := s.emailService.SendVerificationEmail(context.Background(), &u, t); err != nil {
			logger.WithError(err).Error("failed to send verification email", "email", u.Email)
		}
	}(*user, token)

	return nil
}

// Me возвращает профиль текущего пользователя с действующими ролями
func (s *AuthServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	roles, err := s.roleRepo.GetActiveRoleNames(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user, roles), nil
}
