package entity

// Roles válidos del sistema. Se siembran en la migración inicial y nunca se mutan.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Role representa un rol del sistema (conjunto cerrado: USER, ADMIN).
type Role struct {
	ID   int64
	Name string
}

// User representa un usuario registrado. Username y Email son únicos.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca el password en claro
	Roles        []Role
}

// HasRole indica si el usuario tiene el rol con el nombre dado.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames devuelve los nombres de los roles del usuario.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
