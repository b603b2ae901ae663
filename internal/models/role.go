package models

import (
	"time"

	"github.com/google/uuid"
)

// Role - роль с уровнем в иерархии. Чем выше уровень, тем больше прав.
type Role struct {
	BaseModel
	Name           string `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName    string `gorm:"not null" json:"display_name"`
	Description    string `json:"description,omitempty"`
	HierarchyLevel int    `gorm:"not null;default:0" json:"hierarchy_level"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`

	UserRoles []UserRole `gorm:"foreignKey:RoleID" json:"-"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole - назначение роли пользователю
type UserRole struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_role,unique" json:"user_id"`
	RoleID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_role,unique" json:"role_id"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
	AssignedAt time.Time  `gorm:"not null;default:now()" json:"assigned_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// IsEffective сообщает, действует ли назначение сейчас
func (ur *UserRole) IsEffective() bool {
	if !ur.IsActive {
		return false
	}
	if ur.ExpiresAt != nil && time.Now().After(*ur.ExpiresAt) {
		return false
	}
	return true
}
