package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub_backend/internal/models"
)

var ErrRoleNotFound = errors.New("role not found")

// RoleRepository - доступ к ролям и назначениям ролей
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*models.Role, error)
	FindByNames(ctx context.Context, names []string) ([]models.Role, error)
	FindAllActive(ctx context.Context) ([]models.Role, error)
	LevelsByName(ctx context.Context) (map[string]int, error)
	GetActiveRoleNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error
	Upsert(ctx context.Context, role *models.Role) error
}

type roleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func (r *roleRepositoryImpl) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepositoryImpl) FindByNames(ctx context.Context, names []string) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error
	return roles, err
}

func (r *roleRepositoryImpl) FindAllActive(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("hierarchy_level DESC").
		Find(&roles).Error
	return roles, err
}

// LevelsByName возвращает карту имя роли -> уровень для активных ролей
func (r *roleRepositoryImpl) LevelsByName(ctx context.Context) (map[string]int, error) {
	roles, err := r.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	levels := make(map[string]int, len(roles))
	for _, role := range roles {
		levels[role.Name] = role.HierarchyLevel
	}
	return levels, nil
}

// GetActiveRoleNames возвращает имена действующих ролей пользователя.
// Учитываются только активные и непросроченные назначения активных ролей.
func (r *roleRepositoryImpl) GetActiveRoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Where("user_roles.is_active = ?", true).
		Where("user_roles.expires_at IS NULL OR user_roles.expires_at > ?", time.Now()).
		Where("roles.is_active = ?", true).
		Pluck("roles.name", &names).Error
	return names, err
}

// AssignRole назначает роль пользователю. Повторное назначение реактивирует
// существующую запись вместо создания дубликата.
func (r *roleRepositoryImpl) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	var existing models.UserRole
	err := r.db.WithContext(ctx).
		First(&existing, "user_id = ? AND role_id = ?", userID, roleID).Error
	if err == nil {
		if existing.IsActive {
			return nil
		}
		return r.db.WithContext(ctx).
			Model(&existing).
			Updates(map[string]interface{}{
				"is_active":   true,
				"assigned_at": time.Now(),
				"expires_at":  nil,
			}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	userRole := models.UserRole{
		UserID:     userID,
		RoleID:     roleID,
		IsActive:   true,
		AssignedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&userRole).Error
}

func (r *roleRepositoryImpl) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Update("is_active", false).Error
}

// Upsert создает роль или обновляет ее уровень и имена. Используется посевом.
func (r *roleRepositoryImpl) Upsert(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "hierarchy_level", "is_active"}),
		}).
		Create(role).Error
}
