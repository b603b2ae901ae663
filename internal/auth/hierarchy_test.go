package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighestLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 80, HighestLevel([]string{RoleStudent, RoleAdmin}, DefaultRoleLevels))
	assert.Equal(t, 10, HighestLevel([]string{RoleStudent}, DefaultRoleLevels))

	// Пустой список и неизвестные роли дают уровень 0
	assert.Equal(t, 0, HighestLevel(nil, DefaultRoleLevels))
	assert.Equal(t, 0, HighestLevel([]string{"UNKNOWN_ROLE"}, DefaultRoleLevels))
}

func TestMeetsHierarchy(t *testing.T) {
	t.Parallel()

	assert.True(t, MeetsHierarchy([]string{RoleAdmin}, 80, DefaultRoleLevels))
	assert.True(t, MeetsHierarchy([]string{RoleSuperAdmin}, 80, DefaultRoleLevels))
	assert.False(t, MeetsHierarchy([]string{RoleModerator}, 80, DefaultRoleLevels))

	// Отказ по умолчанию: без ролей доступа нет
	assert.False(t, MeetsHierarchy(nil, 10, DefaultRoleLevels))
	assert.False(t, MeetsHierarchy([]string{"UNKNOWN_ROLE"}, 10, DefaultRoleLevels))
}

func TestHasAnyRole(t *testing.T) {
	t.Parallel()

	assert.True(t, HasAnyRole([]string{RoleStudent, RoleMentor}, []string{RoleMentor}))
	assert.False(t, HasAnyRole([]string{RoleStudent}, []string{RoleAdmin, RoleModerator}))
	assert.False(t, HasAnyRole(nil, []string{RoleStudent}))
	assert.False(t, HasAnyRole([]string{RoleStudent}, nil))
}

func TestAssignableRoles(t *testing.T) {
	t.Parallel()

	// SUPER_ADMIN может выдавать все роли
	got := AssignableRoles([]string{RoleSuperAdmin})
	assert.Len(t, got, 6)

	// ADMIN не может выдавать ADMIN и SUPER_ADMIN
	got = AssignableRoles([]string{RoleAdmin})
	assert.ElementsMatch(t, []string{RoleTeacher, RoleMentor, RoleModerator, RoleStudent}, got)

	// Остальные роли не выдают ничего
	assert.Empty(t, AssignableRoles([]string{RoleModerator, RoleTeacher, RoleStudent}))
}

func TestCanGrantRoles(t *testing.T) {
	t.Parallel()

	assert.True(t, CanGrantRoles([]string{RoleSuperAdmin}, []string{RoleAdmin, RoleStudent}, DefaultRoleLevels))
	assert.True(t, CanGrantRoles([]string{RoleAdmin}, []string{RoleTeacher, RoleStudent}, DefaultRoleLevels))

	// ADMIN не может выдать ADMIN
	assert.False(t, CanGrantRoles([]string{RoleAdmin}, []string{RoleAdmin}, DefaultRoleLevels))

	// MODERATOR не выдает ничего
	assert.False(t, CanGrantRoles([]string{RoleModerator}, []string{RoleStudent}, DefaultRoleLevels))

	// Неизвестная целевая роль - отказ
	assert.False(t, CanGrantRoles([]string{RoleSuperAdmin}, []string{"UNKNOWN_ROLE"}, DefaultRoleLevels))

	// Пустой список целей разрешен
	assert.True(t, CanGrantRoles([]string{RoleAdmin}, nil, DefaultRoleLevels))
}
