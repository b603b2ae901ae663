package dto

import "time"

// RegisterRequest - запрос регистрации. Roles опциональны,
// при пустом списке назначается STUDENT
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,password"`
	FirstName string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=1,max=100"`
	Roles     []string `json:"roles" validate:"omitempty,dive,role-name"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest - запрос обновления пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// VerifyEmailRequest - подтверждение email по токену из письма
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ForgotPasswordRequest - запрос сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - установка нового пароля по токену
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// ResendVerificationRequest - повторная отправка письма подтверждения
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse - ответ с парой токенов и данными пользователя
type AuthResponse struct {
	AccessToken      string        `json:"access_token"`
	RefreshToken     string        `json:"refresh_token"`
	AccessExpiresAt  time.Time     `json:"access_expires_at"`
	RefreshExpiresAt time.Time     `json:"refresh_expires_at"`
	User             *UserResponse `json:"user"`
}

// TokenResponse - ответ с парой токенов без данных пользователя
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// MessageResponse - общий ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
