package auth

// Имена системных ролей
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleModerator  = "MODERATOR"
	RoleTeacher    = "TEACHER"
	RoleMentor     = "MENTOR"
	RoleStudent    = "STUDENT"
)

// DefaultRoleLevels - посев иерархии ролей. Уровень сравнивается численно,
// большее значение означает больше полномочий.
var DefaultRoleLevels = map[string]int{
	RoleSuperAdmin: 100,
	RoleAdmin:      80,
	RoleModerator:  60,
	RoleTeacher:    40,
	RoleMentor:     30,
	RoleStudent:    10,
}

// DefaultRoleDisplayNames - отображаемые имена для посева
var DefaultRoleDisplayNames = map[string]string{
	RoleSuperAdmin: "Super Administrator",
	RoleAdmin:      "Administrator",
	RoleModerator:  "Moderator",
	RoleTeacher:    "Teacher",
	RoleMentor:     "Mentor",
	RoleStudent:    "Student",
}

// assignableRoles - какие роли может выдавать обладатель данной роли.
// Роль вне этой карты не дает права назначать ничего.
var assignableRoles = map[string][]string{
	RoleSuperAdmin: {RoleSuperAdmin, RoleAdmin, RoleModerator, RoleTeacher, RoleMentor, RoleStudent},
	RoleAdmin:      {RoleTeacher, RoleMentor, RoleModerator, RoleStudent},
}

// HighestLevel возвращает максимальный уровень среди ролей пользователя.
// Неизвестные роли (отсутствующие в levels) не учитываются.
func HighestLevel(roles []string, levels map[string]int) int {
	highest := 0
	for _, r := range roles {
		if lvl, ok := levels[r]; ok && lvl > highest {
			highest = lvl
		}
	}
	return highest
}

// MeetsHierarchy проверяет, достигает ли пользователь требуемого уровня.
// Пустой список ролей или неизвестные роли дают уровень 0 и отказ.
func MeetsHierarchy(userRoles []string, requiredLevel int, levels map[string]int) bool {
	return HighestLevel(userRoles, levels) >= requiredLevel
}

// HasAnyRole проверяет наличие хотя бы одной из требуемых ролей
func HasAnyRole(userRoles []string, required []string) bool {
	for _, have := range userRoles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AssignableRoles возвращает объединение ролей, которые может выдавать
// обладатель данного набора ролей
func AssignableRoles(userRoles []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, r := range userRoles {
		for _, grantable := range assignableRoles[r] {
			if !seen[grantable] {
				seen[grantable] = true
				result = append(result, grantable)
			}
		}
	}
	return result
}

// CanGrantRoles проверяет, имеет ли пользователь право выдать все указанные
// роли: каждая должна входить в его allow-list, и его уровень должен быть
// не ниже уровня выдаваемой роли.
func CanGrantRoles(userRoles []string, targetRoles []string, levels map[string]int) bool {
	allowed := make(map[string]bool)
	for _, r := range AssignableRoles(userRoles) {
		allowed[r] = true
	}

	callerLevel := HighestLevel(userRoles, levels)
	for _, target := range targetRoles {
		if !allowed[target] {
			return false
		}
		lvl, ok := levels[target]
		if !ok || lvl > callerLevel {
			return false
		}
	}
	return true
}
