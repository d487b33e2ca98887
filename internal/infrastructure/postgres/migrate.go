package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jhoicas/Tarjetas-api/internal/infrastructure/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations aplica las migraciones embebidas con goose sobre una conexión
// database/sql (driver pgx/stdlib). Se invoca una vez al arrancar, antes de
// abrir el pool de la aplicación.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión para migraciones: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("dialecto goose: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
