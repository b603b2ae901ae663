package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"
)

// UserService - административное управление пользователями
type UserService interface {
	List(ctx context.Context, query *dto.ListUsersQuery) (*dto.UserListResponse, error)
	AdminCreate(ctx context.Context, actorRoles []string, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	UpdateStatus(ctx context.Context, actorRoles []string, targetID uuid.UUID, status models.UserStatus) (*dto.UserResponse, error)
	UpdateRoles(ctx context.Context, actorRoles []string, targetID uuid.UUID, desiredRoles []string) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	roleRepo  repositories.RoleRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	tokenRepo repositories.RefreshTokenRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *UserServiceImpl) List(ctx context.Context, query *dto.ListUsersQuery) (*dto.UserListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	users, total, err := s.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		roles, err := s.roleRepo.GetActiveRoleNames(ctx, users[i].ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		responses = append(responses, *dto.NewUserResponse(&users[i], roles))
	}

	return &dto.UserListResponse{
		Users: responses,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// AdminCreate создает уже активный аккаунт с заданными ролями.
// Роли проверяются по allow-list создающего.
func (s *UserServiceImpl) AdminCreate(ctx context.Context, actorRoles []string, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	desiredRoles := req.Roles
	if len(desiredRoles) == 0 {
		desiredRoles = []string{auth.RoleStudent}
	}

	levels, err := s.roleRepo.LevelsByName(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !auth.CanGrantRoles(actorRoles, desiredRoles, levels) {
		return nil, apperrors.ErrRoleNotAssignable
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:           req.Email,
		PasswordHash:    passwordHash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Status:          models.UserStatusActive,
		IsEmailVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	for _, roleName := range desiredRoles {
		role, err := s.roleRepo.FindByName(ctx, roleName)
		if err != nil {
			return nil, apperrors.ErrRoleNotFound
		}
		if err := s.roleRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "user created by admin", "user_id", user.ID, "roles", desiredRoles)
	return dto.NewUserResponse(user, desiredRoles), nil
}

// UpdateStatus меняет статус аккаунта. Действует только вниз по иерархии:
// уровень инициатора должен быть строго выше уровня цели.
func (s *UserServiceImpl) UpdateStatus(ctx context.Context, actorRoles []string, targetID uuid.UUID, status models.UserStatus) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	levels, err := s.roleRepo.LevelsByName(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	targetRoles, err := s.roleRepo.GetActiveRoleNames(ctx, targetID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if auth.HighestLevel(actorRoles, levels) <= auth.HighestLevel(targetRoles, levels) {
		return nil, apperrors.ErrInsufficientHierarchy
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Заблокированный аккаунт теряет все сессии
	if status == models.UserStatusSuspended {
		if err := s.tokenRepo.DeleteByUserID(ctx, targetID); err != nil {
			logger.CtxWithError(ctx, "failed to revoke refresh tokens", err, "user_id", targetID)
		}
	}

	logger.CtxInfo(ctx, "user status updated", "user_id", targetID, "status", status)
	return dto.NewUserResponse(user, targetRoles), nil
}

// UpdateRoles приводит набор ролей пользователя к желаемому.
// Считается разница: недостающие роли добавляются, лишние деактивируются,
// уже назначенные не трогаются и сохраняют метаданные назначения.
func (s *UserServiceImpl) UpdateRoles(ctx context.Context, actorRoles []string, targetID uuid.UUID, desiredRoles []string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	currentRoles, err := s.roleRepo.GetActiveRoleNames(ctx, targetID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	current := make(map[string]bool, len(currentRoles))
	for _, r := range currentRoles {
		current[r] = true
	}
	desired := make(map[string]bool, len(desiredRoles))
	for _, r := range desiredRoles {
		desired[r] = true
	}

	var toAdd, toRemove []string
	for _, r := range desiredRoles {
		if !current[r] {
			toAdd = append(toAdd, r)
		}
	}
	for _, r := range currentRoles {
		if !desired[r] {
			toRemove = append(toRemove, r)
		}
	}

	// Право требуется и на добавляемые, и на снимаемые роли
	touched := append(append([]string{}, toAdd...), toRemove...)
	if len(touched) > 0 {
		levels, err := s.roleRepo.LevelsByName(ctx)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !auth.CanGrantRoles(actorRoles, touched, levels) {
			return nil, apperrors.ErrRoleNotAssignable
		}
	}

	for _, roleName := range toAdd {
		role, err := s.roleRepo.FindByName(ctx, roleName)
		if err != nil {
			return nil, apperrors.ErrRoleNotFound
		}
		if err := s.roleRepo.AssignRole(ctx, targetID, role.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	for _, roleName := range toRemove {
		role, err := s.roleRepo.FindByName(ctx, roleName)
		if err != nil {
			return nil, apperrors.ErrRoleNotFound
		}
		if err := s.roleRepo.RemoveRole(ctx, targetID, role.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	updatedRoles, err := s.roleRepo.GetActiveRoleNames(ctx, targetID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user roles updated",
		"user_id", targetID, "added", toAdd, "removed", toRemove)
	return dto.NewUserResponse(user, updatedRoles), nil
}
