package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Tarjetas-api/internal/application/auth"
	"github.com/jhoicas/Tarjetas-api/internal/application/transfer"
	"github.com/jhoicas/Tarjetas-api/internal/application/user"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

// Ensure TxRunner implements transfer.TxRunner y los runners de identidad.
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ user.IdentityTxRunner = (*TxRunner)(nil)
var _ auth.IdentityTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repo de tarjetas atado a la
// tx y hace Commit o Rollback. Si el ctx se cancela antes del Commit, la
// transacción se aborta y ningún balance cambia.
func (r *TxRunner) Run(ctx context.Context, fn func(cards repository.CardRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCardRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIdentity inicia una transacción con repos de usuarios y roles, para que
// el insert de users + user_roles sea atómico.
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	users repository.UserRepository,
	roles repository.RoleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewRoleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
