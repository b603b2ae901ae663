package models

import (
	"time"

	"github.com/google/uuid"
)

// User - аккаунт пользователя
type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	FirstName       string     `gorm:"not null" json:"first_name"`
	LastName        string     `gorm:"not null" json:"last_name"`
	Status          UserStatus `gorm:"type:varchar(32);not null;default:'pending_verification'" json:"status"`
	IsEmailVerified bool       `gorm:"not null;default:false" json:"is_email_verified"`

	// Одноразовые токены (хранятся в открытом виде, живут недолго)
	EmailVerificationToken *string    `gorm:"index" json:"-"`
	PasswordResetToken     *string    `gorm:"index" json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	UserRoles     []UserRole     `gorm:"foreignKey:UserID" json:"user_roles,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsActive сообщает, может ли аккаунт проходить аутентификацию
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RefreshToken - отпечаток выданного refresh-токена.
// Хранится только SHA-256 от токена, сам токен знает лишь клиент.
type RefreshToken struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired проверяет срок жизни токена
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}
