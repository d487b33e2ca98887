package repository

import (
	"context"

	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) si no existe la fila.
type UserRepository interface {
	// Create inserta el usuario y sus filas en user_roles; asigna user.ID.
	// Retorna domain.ErrConflict si username o email ya existen.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RoleRepository define el puerto de lectura para Role. Los roles se siembran
// en migraciones y el core nunca los muta.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	// FindByNames devuelve los roles existentes entre los nombres dados;
	// los nombres desconocidos se omiten sin error.
	FindByNames(ctx context.Context, names []string) ([]entity.Role, error)
}
