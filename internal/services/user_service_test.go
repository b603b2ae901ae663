package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"
)

type userFixture struct {
	service   UserService
	userRepo  *fakeUserRepo
	roleRepo  *fakeRoleRepo
	tokenRepo *fakeTokenRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo(auth.DefaultRoleLevels)
	tokenRepo := newFakeTokenRepo()
	return &userFixture{
		service:   NewUserService(userRepo, roleRepo, tokenRepo),
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokenRepo: tokenRepo,
	}
}

// seedUser создает пользователя с заданными ролями напрямую в репозиториях
func (f *userFixture) seedUser(t *testing.T, email string, roles ...string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Имя",
		LastName:     "Фамилия",
		Status:       models.UserStatusActive,
	}
	require.NoError(t, f.userRepo.Create(ctx, user))
	for _, roleName := range roles {
		role, err := f.roleRepo.FindByName(ctx, roleName)
		require.NoError(t, err)
		require.NoError(t, f.roleRepo.AssignRole(ctx, user.ID, role.ID))
	}
	return user.ID
}

func TestAdminCreate(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	user, err := f.service.AdminCreate(context.Background(), []string{auth.RoleAdmin}, &dto.AdminCreateUserRequest{
		Email:     "teacher@test.com",
		Password:  "password1",
		FirstName: "Анна",
		LastName:  "Иванова",
		Roles:     []string{auth.RoleTeacher},
	})
	require.NoError(t, err)

	// Созданный админом аккаунт сразу активен и верифицирован
	assert.Equal(t, string(models.UserStatusActive), user.Status)
	assert.True(t, user.IsEmailVerified)
	assert.Equal(t, []string{auth.RoleTeacher}, user.Roles)
}

// ADMIN не может создать другого ADMIN
func TestAdminCreate_RoleNotAssignable(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	_, err := f.service.AdminCreate(context.Background(), []string{auth.RoleAdmin}, &dto.AdminCreateUserRequest{
		Email:     "admin2@test.com",
		Password:  "password1",
		FirstName: "Петр",
		LastName:  "Сидоров",
		Roles:     []string{auth.RoleAdmin},
	})
	assert.ErrorIs(t, err, apperrors.ErrRoleNotAssignable)
}

func TestAdminCreate_DefaultRole(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	user, err := f.service.AdminCreate(context.Background(), []string{auth.RoleAdmin}, &dto.AdminCreateUserRequest{
		Email:     "student@test.com",
		Password:  "password1",
		FirstName: "Олег",
		LastName:  "Кузнецов",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.RoleStudent}, user.Roles)
}

func TestUpdateStatus_Suspend(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	targetID := f.seedUser(t, "student@test.com", auth.RoleStudent)

	// У цели есть сессия
	require.NoError(t, f.tokenRepo.Create(context.Background(), &models.RefreshToken{
		UserID:    targetID,
		TokenHash: "hash1",
	}))

	user, err := f.service.UpdateStatus(context.Background(),
		[]string{auth.RoleAdmin}, targetID, models.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, string(models.UserStatusSuspended), user.Status)

	// Блокировка отзывает сессии
	assert.Equal(t, 0, f.tokenRepo.count())
}

// Статус равного или вышестоящего менять нельзя
func TestUpdateStatus_InsufficientHierarchy(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	adminID := f.seedUser(t, "admin@test.com", auth.RoleAdmin)
	superID := f.seedUser(t, "super@test.com", auth.RoleSuperAdmin)

	_, err := f.service.UpdateStatus(context.Background(),
		[]string{auth.RoleAdmin}, adminID, models.UserStatusSuspended)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientHierarchy)

	_, err = f.service.UpdateStatus(context.Background(),
		[]string{auth.RoleAdmin}, superID, models.UserStatusSuspended)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientHierarchy)
}

func TestUpdateStatus_UserNotFound(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	_, err := f.service.UpdateStatus(context.Background(),
		[]string{auth.RoleSuperAdmin}, uuid.New(), models.UserStatusSuspended)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// Набор ролей приводится к желаемому через разницу: добавления и снятия
func TestUpdateRoles_Diff(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	targetID := f.seedUser(t, "user@test.com", auth.RoleStudent, auth.RoleMentor)

	user, err := f.service.UpdateRoles(context.Background(),
		[]string{auth.RoleAdmin}, targetID, []string{auth.RoleStudent, auth.RoleTeacher})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{auth.RoleStudent, auth.RoleTeacher}, user.Roles)
}

// Пустой желаемый набор снимает все роли
func TestUpdateRoles_RemoveAll(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	targetID := f.seedUser(t, "user@test.com", auth.RoleStudent)

	user, err := f.service.UpdateRoles(context.Background(),
		[]string{auth.RoleAdmin}, targetID, []string{})
	require.NoError(t, err)
	assert.Empty(t, user.Roles)
}

// Совпадающий набор не требует прав на выдачу
func TestUpdateRoles_NoChanges(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	targetID := f.seedUser(t, "user@test.com", auth.RoleStudent)

	user, err := f.service.UpdateRoles(context.Background(),
		[]string{auth.RoleModerator}, targetID, []string{auth.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.RoleStudent}, user.Roles)
}

// ADMIN не может ни выдать, ни снять роль ADMIN
func TestUpdateRoles_CannotTouchAdminRole(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	targetID := f.seedUser(t, "user@test.com", auth.RoleAdmin)

	_, err := f.service.UpdateRoles(context.Background(),
		[]string{auth.RoleAdmin}, targetID, []string{auth.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrRoleNotAssignable)

	// SUPER_ADMIN может
	user, err := f.service.UpdateRoles(context.Background(),
		[]string{auth.RoleSuperAdmin}, targetID, []string{auth.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.RoleStudent}, user.Roles)
}

func TestList(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	f.seedUser(t, "a@test.com", auth.RoleStudent)
	f.seedUser(t, "b@test.com", auth.RoleTeacher)

	resp, err := f.service.List(context.Background(), &dto.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, 1, resp.Page)
}
