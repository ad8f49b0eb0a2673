package domain

// Role роль актора по отношению к площадке
// Закрытый набор; иерархия задается единственной таблицей roleGrants
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

// roleGrants таблица иерархии: роль -> набор ролей, от имени которых она может действовать
var roleGrants = map[Role][]Role{
	RoleUser:    {RoleUser},
	RoleManager: {RoleUser, RoleManager},
	RoleOwner:   {RoleUser, RoleManager, RoleOwner},
	RoleAdmin:   {RoleUser, RoleManager, RoleOwner, RoleAdmin},
}

// CanActAs возвращает true, если роль r покрывает требуемую роль required
func (r Role) CanActAs(required Role) bool {
	for _, granted := range roleGrants[r] {
		if granted == required {
			return true
		}
	}
	return false
}

// IsElevated возвращает true для ролей выше обычного пользователя
func (r Role) IsElevated() bool {
	return r.CanActAs(RoleManager)
}
