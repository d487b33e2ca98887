package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

var _ repository.CardRepository = (*CardRepo)(nil)

const cardColumns = `id, number, owner_id, expiration_date, status, balance`

// CardRepo implementación del puerto CardRepository sobre PostgreSQL
// (usable con pool o tx). En cada escritura re-evalúa la expiración:
// si expiration_date es anterior a hoy, el estado persistido pasa a EXPIRED.
type CardRepo struct {
	q Querier
}

// NewCardRepository construye el adaptador de tarjetas. Pasar pool o tx (Querier).
func NewCardRepository(q Querier) *CardRepo {
	return &CardRepo{q: q}
}

// FindByID obtiene una tarjeta por ID. Devuelve (nil, nil) si no existe.
func (r *CardRepo) FindByID(ctx context.Context, id int64) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// FindByIDForUpdate obtiene una tarjeta y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *CardRepo) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// FindAll lista todas las tarjetas con paginación.
func (r *CardRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY id LIMIT $1 OFFSET $2`
	return r.scanMany(ctx, query, limit, offset)
}

// FindByStatus lista tarjetas por estado con paginación.
func (r *CardRepo) FindByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE status = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, status, limit, offset)
}

// FindByOwner lista las tarjetas de un titular con paginación.
func (r *CardRepo) FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, ownerID, limit, offset)
}

// FindByOwnerAndStatus lista las tarjetas de un titular filtradas por estado.
func (r *CardRepo) FindByOwnerAndStatus(ctx context.Context, ownerID int64, status string, limit, offset int) ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 AND status = $2 ORDER BY id LIMIT $3 OFFSET $4`
	return r.scanMany(ctx, query, ownerID, status, limit, offset)
}

// CountAll cuenta todas las tarjetas.
func (r *CardRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cards`)
}

// CountByStatus cuenta tarjetas por estado.
func (r *CardRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cards WHERE status = $1`, status)
}

// CountByOwner cuenta las tarjetas de un titular.
func (r *CardRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cards WHERE owner_id = $1`, ownerID)
}

// CountByOwnerAndStatus cuenta las tarjetas de un titular por estado.
func (r *CardRepo) CountByOwnerAndStatus(ctx context.Context, ownerID int64, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cards WHERE owner_id = $1 AND status = $2`, ownerID, status)
}

// Create inserta la tarjeta y asigna el ID generado.
func (r *CardRepo) Create(ctx context.Context, card *entity.Card) error {
	card.ApplyExpiration(time.Now())
	query := `
		INSERT INTO cards (number, owner_id, expiration_date, status, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		card.Number, card.OwnerID, card.ExpirationDate, card.Status, card.Balance,
	).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// Update actualiza una tarjeta existente. El owner_id nunca se reescribe:
// la propiedad de una tarjeta es inmutable después de la creación.
func (r *CardRepo) Update(ctx context.Context, card *entity.Card) error {
	card.ApplyExpiration(time.Now())
	query := `
		UPDATE cards SET number = $2, expiration_date = $3, status = $4, balance = $5
		WHERE id = $1`
	ct, err := r.q.Exec(ctx, query,
		card.ID, card.Number, card.ExpirationDate, card.Status, card.Balance,
	)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("update card %d: fila no encontrada", card.ID)
	}
	return nil
}

// Delete elimina una tarjeta por ID.
func (r *CardRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// SaveAll actualiza varias tarjetas. Es atómico solo cuando el repo está
// atado a una transacción (TxRunner).
func (r *CardRepo) SaveAll(ctx context.Context, cards []*entity.Card) error {
	for _, card := range cards {
		if err := r.Update(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

func (r *CardRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Card, error) {
	var c entity.Card
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Number, &c.OwnerID, &c.ExpirationDate, &c.Status, &c.Balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

func (r *CardRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Card, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()
	var list []*entity.Card
	for rows.Next() {
		var c entity.Card
		if err := rows.Scan(&c.ID, &c.Number, &c.OwnerID, &c.ExpirationDate, &c.Status, &c.Balance); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CardRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}
