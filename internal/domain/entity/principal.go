package entity

// Principal es el llamador autenticado de una petición: identidad más roles.
// Es efímero (se resuelve del token en el boundary HTTP) y se pasa como
// argumento explícito a cada operación de dominio; nunca se persiste ni se
// lee de estado ambiente.
type Principal struct {
	UserID   int64
	Username string
	Roles    []string
}

// HasRole indica si el principal tiene el rol dado.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IsAdmin atajo para HasRole(RoleAdmin).
func (p Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }

// IsUser atajo para HasRole(RoleUser).
func (p Principal) IsUser() bool { return p.HasRole(RoleUser) }
