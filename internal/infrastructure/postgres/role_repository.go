package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de solo lectura del puerto RoleRepository.
// Los roles se siembran en la migración inicial.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// FindByName obtiene un rol por nombre. Devuelve (nil, nil) si no existe.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

// FindByNames devuelve los roles existentes entre los nombres dados.
// Los nombres desconocidos se omiten sin error.
func (r *RoleRepo) FindByNames(ctx context.Context, names []string) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM roles WHERE name = ANY($1) ORDER BY id`, names)
	if err != nil {
		return nil, fmt.Errorf("list roles by names: %w", err)
	}
	defer rows.Close()
	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
