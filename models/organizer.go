package models

// OrganizerLink — внешняя ссылка организатора (сайт, соцсети).
type OrganizerLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Organizer — публичный профиль организатора, join'ится к турниру по FK.
type Organizer struct {
	ID               string          `json:"id"`
	OrganizationName string          `json:"organization_name"`
	Links            []OrganizerLink `json:"links"`
}

// OrgRole — роль пользователя внутри организации.
type OrgRole string

const (
	OrgRoleMember OrgRole = "member"
	OrgRoleAdmin  OrgRole = "admin"
	OrgRoleOwner  OrgRole = "owner"
)

// rank задаёт иерархию ролей: member < admin < owner.
func (r OrgRole) rank() int {
	switch r {
	case OrgRoleOwner:
		return 2
	case OrgRoleAdmin:
		return 1
	case OrgRoleMember:
		return 0
	}
	return -1
}

// Meets сообщает, покрывает ли роль требуемый минимум.
func (r OrgRole) Meets(min OrgRole) bool {
	return r.rank() >= 0 && r.rank() >= min.rank()
}
