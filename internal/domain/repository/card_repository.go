package repository

import (
	"context"

	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
)

// CardRepository define el puerto de persistencia para Card (DIP).
// Los métodos Find* devuelven (nil, nil) si no existe la fila.
type CardRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Card, error)
	// FindByIDForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Card, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Card, error)
	FindByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Card, error)
	FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Card, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID int64, status string, limit, offset int) ([]*entity.Card, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	CountByOwnerAndStatus(ctx context.Context, ownerID int64, status string) (int64, error)
	// Create inserta la tarjeta y asigna card.ID.
	Create(ctx context.Context, card *entity.Card) error
	Update(ctx context.Context, card *entity.Card) error
	Delete(ctx context.Context, id int64) error
	// SaveAll persiste varias tarjetas; atómico solo si el repo está atado a una tx.
	SaveAll(ctx context.Context, cards []*entity.Card) error
}
