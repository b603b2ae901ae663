package dto

import (
	"time"

	"github.com/google/uuid"

	"learnhub_backend/internal/models"
)

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Status          string     `json:"status"`
	IsEmailVerified bool       `json:"is_email_verified"`
	Roles           []string   `json:"roles"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewUserResponse собирает ответ из модели и списка действующих ролей
func NewUserResponse(user *models.User, roles []string) *UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Status:          string(user.Status),
		IsEmailVerified: user.IsEmailVerified,
		Roles:           roles,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

// AdminCreateUserRequest - создание пользователя администратором
type AdminCreateUserRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,password"`
	FirstName string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=1,max=100"`
	Roles     []string `json:"roles" validate:"omitempty,dive,role-name"`
}

// UpdateUserStatusRequest - смена статуса аккаунта
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_verification active suspended"`
}

// UpdateUserRolesRequest - полный желаемый набор ролей пользователя
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" validate:"required,dive,role-name"`
}

// ListUsersQuery - параметры постраничной выборки
type ListUsersQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
