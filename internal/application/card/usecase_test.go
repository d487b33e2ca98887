package card_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tarjetas-api/internal/application/card"
	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

// fakeVault cifra con un prefijo reversible; suficiente para verificar que el
// caso de uso nunca expone el PAN en claro.
type fakeVault struct{}

func (fakeVault) Encrypt(pan string) (string, error) { return "enc:" + pan, nil }

func (fakeVault) Mask(stored string) (string, error) {
	pan := strings.TrimPrefix(stored, "enc:")
	if len(pan) < 4 {
		return pan, nil
	}
	return "**** **** **** " + pan[len(pan)-4:], nil
}

type fakeCardRepo struct {
	cards  map[int64]*entity.Card
	nextID int64
}

var _ repository.CardRepository = (*fakeCardRepo)(nil)

func newFakeCardRepo(cards ...*entity.Card) *fakeCardRepo {
	f := &fakeCardRepo{cards: make(map[int64]*entity.Card), nextID: 1}
	for _, c := range cards {
		f.cards[c.ID] = c
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeCardRepo) FindByID(_ context.Context, id int64) (*entity.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCardRepo) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Card, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeCardRepo) list(filter func(*entity.Card) bool, limit, offset int) []*entity.Card {
	var out []*entity.Card
	for id := int64(1); id < f.nextID; id++ {
		c, ok := f.cards[id]
		if ok && filter(c) {
			copia := *c
			out = append(out, &copia)
		}
	}
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (f *fakeCardRepo) count(filter func(*entity.Card) bool) int64 {
	var n int64
	for _, c := range f.cards {
		if filter(c) {
			n++
		}
	}
	return n
}

func (f *fakeCardRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Card, error) {
	return f.list(func(*entity.Card) bool { return true }, limit, offset), nil
}

func (f *fakeCardRepo) FindByStatus(_ context.Context, status string, limit, offset int) ([]*entity.Card, error) {
	return f.list(func(c *entity.Card) bool { return c.Status == status }, limit, offset), nil
}

func (f *fakeCardRepo) FindByOwner(_ context.Context, ownerID int64, limit, offset int) ([]*entity.Card, error) {
	return f.list(func(c *entity.Card) bool { return c.OwnerID == ownerID }, limit, offset), nil
}

func (f *fakeCardRepo) FindByOwnerAndStatus(_ context.Context, ownerID int64, status string, limit, offset int) ([]*entity.Card, error) {
	return f.list(func(c *entity.Card) bool { return c.OwnerID == ownerID && c.Status == status }, limit, offset), nil
}

func (f *fakeCardRepo) CountAll(context.Context) (int64, error) {
	return f.count(func(*entity.Card) bool { return true }), nil
}

func (f *fakeCardRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	return f.count(func(c *entity.Card) bool { return c.Status == status }), nil
}

func (f *fakeCardRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	return f.count(func(c *entity.Card) bool { return c.OwnerID == ownerID }), nil
}

func (f *fakeCardRepo) CountByOwnerAndStatus(_ context.Context, ownerID int64, status string) (int64, error) {
	return f.count(func(c *entity.Card) bool { return c.OwnerID == ownerID && c.Status == status }), nil
}

func (f *fakeCardRepo) Create(_ context.Context, c *entity.Card) error {
	c.ApplyExpiration(time.Now())
	c.ID = f.nextID
	f.nextID++
	copia := *c
	f.cards[c.ID] = &copia
	return nil
}

func (f *fakeCardRepo) Update(_ context.Context, c *entity.Card) error {
	c.ApplyExpiration(time.Now())
	copia := *c
	f.cards[c.ID] = &copia
	return nil
}

func (f *fakeCardRepo) Delete(_ context.Context, id int64) error {
	delete(f.cards, id)
	return nil
}

func (f *fakeCardRepo) SaveAll(ctx context.Context, cards []*entity.Card) error {
	for _, c := range cards {
		if err := f.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAll(context.Context) ([]*entity.User, error)        { return nil, nil }
func (f *fakeUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }

var (
	admin = entity.Principal{UserID: 1, Username: "root", Roles: []string{entity.RoleAdmin}}
	alice = entity.Principal{UserID: 7, Username: "alice", Roles: []string{entity.RoleUser}}
	bob   = entity.Principal{UserID: 8, Username: "bob", Roles: []string{entity.RoleUser}}
)

func newUseCase(cards *fakeCardRepo) *card.CardUseCase {
	users := &fakeUserRepo{users: map[int64]*entity.User{
		alice.UserID: {ID: alice.UserID, Username: "alice"},
		bob.UserID:   {ID: bob.UserID, Username: "bob"},
	}}
	return card.NewCardUseCase(cards, users, fakeVault{})
}

func activeCard(id, ownerID int64, pan string) *entity.Card {
	return &entity.Card{
		ID:             id,
		Number:         "enc:" + pan,
		OwnerID:        ownerID,
		ExpirationDate: time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:         entity.CardStatusActive,
		Balance:        decimal.RequireFromString("100.00"),
	}
}

func TestCardCreate(t *testing.T) {
	t.Run("crea con PAN cifrado y estado ACTIVE", func(t *testing.T) {
		repo := newFakeCardRepo()
		uc := newUseCase(repo)

		resp, err := uc.Create(context.Background(), admin, dto.CreateCardRequest{
			Number:         "4111222233334444",
			OwnerID:        alice.UserID,
			ExpirationDate: "2030-01-31",
			Balance:        decimal.RequireFromString("1000.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, "**** **** **** 4444", resp.MaskedNumber, "la vista nunca trae el PAN completo")
		assert.Equal(t, entity.CardStatusActive, resp.Status)
		assert.Equal(t, "2030-01-31", resp.ExpirationDate)

		guardada := repo.cards[resp.ID]
		require.NotNil(t, guardada)
		assert.Equal(t, "enc:4111222233334444", guardada.Number, "se persiste cifrado, no en claro")
	})

	t.Run("fecha de expiración pasada persiste EXPIRED", func(t *testing.T) {
		uc := newUseCase(newFakeCardRepo())
		resp, err := uc.Create(context.Background(), admin, dto.CreateCardRequest{
			Number:         "4111222233334444",
			OwnerID:        alice.UserID,
			ExpirationDate: "2020-01-31",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.CardStatusExpired, resp.Status)
	})

	t.Run("entradas inválidas", func(t *testing.T) {
		uc := newUseCase(newFakeCardRepo())
		cases := []struct {
			nombre  string
			in      dto.CreateCardRequest
			wantErr error
		}{
			{"PAN con menos de 16 dígitos", dto.CreateCardRequest{Number: "411122223333", OwnerID: alice.UserID, ExpirationDate: "2030-01-31"}, domain.ErrInvalidInput},
			{"PAN con letras", dto.CreateCardRequest{Number: "41112222333344XX", OwnerID: alice.UserID, ExpirationDate: "2030-01-31"}, domain.ErrInvalidInput},
			{"fecha mal formada", dto.CreateCardRequest{Number: "4111222233334444", OwnerID: alice.UserID, ExpirationDate: "31/01/2030"}, domain.ErrInvalidInput},
			{"balance negativo", dto.CreateCardRequest{Number: "4111222233334444", OwnerID: alice.UserID, ExpirationDate: "2030-01-31", Balance: decimal.RequireFromString("-1")}, domain.ErrInvalidInput},
			{"titular inexistente", dto.CreateCardRequest{Number: "4111222233334444", OwnerID: 999, ExpirationDate: "2030-01-31"}, domain.ErrNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.nombre, func(t *testing.T) {
				_, err := uc.Create(context.Background(), admin, tc.in)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("USER no puede crear", func(t *testing.T) {
		uc := newUseCase(newFakeCardRepo())
		_, err := uc.Create(context.Background(), alice, dto.CreateCardRequest{
			Number: "4111222233334444", OwnerID: alice.UserID, ExpirationDate: "2030-01-31",
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCardGetByID_Visibilidad(t *testing.T) {
	repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
	uc := newUseCase(repo)

	t.Run("el dueño la ve enmascarada", func(t *testing.T) {
		resp, err := uc.GetByID(context.Background(), alice, 1)
		require.NoError(t, err)
		assert.Equal(t, "**** **** **** 4444", resp.MaskedNumber)
	})

	t.Run("ADMIN la ve", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), admin, 1)
		assert.NoError(t, err)
	})

	// Un no-dueño recibe el mismo error que un id inexistente: los ids de
	// tarjetas ajenas no se pueden sondear.
	t.Run("no-dueño recibe NotFound, no Forbidden", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), bob, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("id inexistente recibe NotFound", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), bob, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCardList(t *testing.T) {
	repo := newFakeCardRepo(
		activeCard(1, alice.UserID, "4111222233334444"),
		activeCard(2, alice.UserID, "4111222233335555"),
		activeCard(3, bob.UserID, "4111222233336666"),
	)
	repo.cards[2].Status = entity.CardStatusBlocked
	uc := newUseCase(repo)

	t.Run("ADMIN ve todas", func(t *testing.T) {
		page, err := uc.List(context.Background(), admin, "", dto.PageRequest{})
		require.NoError(t, err)
		assert.Len(t, page.Content, 3)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("USER ve solo las propias", func(t *testing.T) {
		page, err := uc.List(context.Background(), alice, "", dto.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Content, 2)
		for _, c := range page.Content {
			assert.Equal(t, alice.UserID, c.OwnerID)
		}
	})

	t.Run("filtro por estado insensible a mayúsculas", func(t *testing.T) {
		page, err := uc.List(context.Background(), alice, "blocked", dto.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, int64(2), page.Content[0].ID)
	})

	t.Run("estado desconocido es entrada inválida", func(t *testing.T) {
		_, err := uc.List(context.Background(), alice, "FROZEN", dto.PageRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("paginación con clamp", func(t *testing.T) {
		page, err := uc.List(context.Background(), admin, "", dto.PageRequest{Page: 1, Size: 2})
		require.NoError(t, err)
		require.Len(t, page.Content, 1, "la página 1 (base cero) de tamaño 2 trae el resto")
		assert.Equal(t, int64(3), page.Content[0].ID)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("principal sin roles recibe Forbidden", func(t *testing.T) {
		_, err := uc.List(context.Background(), entity.Principal{UserID: 99}, "", dto.PageRequest{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCardUpdate(t *testing.T) {
	t.Run("una EXPIRED con fecha futura vuelve a ACTIVE", func(t *testing.T) {
		c := activeCard(1, alice.UserID, "4111222233334444")
		c.Status = entity.CardStatusExpired
		c.ExpirationDate = time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
		repo := newFakeCardRepo(c)
		uc := newUseCase(repo)

		resp, err := uc.Update(context.Background(), admin, 1, dto.UpdateCardRequest{ExpirationDate: "2031-12-31"})
		require.NoError(t, err)
		assert.Equal(t, entity.CardStatusActive, resp.Status)
	})

	t.Run("el estado explícito tiene prioridad", func(t *testing.T) {
		c := activeCard(1, alice.UserID, "4111222233334444")
		c.Status = entity.CardStatusExpired
		repo := newFakeCardRepo(c)
		uc := newUseCase(repo)

		resp, err := uc.Update(context.Background(), admin, 1, dto.UpdateCardRequest{ExpirationDate: "2031-12-31", Status: "BLOCKED"})
		require.NoError(t, err)
		assert.Equal(t, entity.CardStatusBlocked, resp.Status)
	})

	t.Run("fecha pasada persiste EXPIRED aunque se pida ACTIVE", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)

		resp, err := uc.Update(context.Background(), admin, 1, dto.UpdateCardRequest{ExpirationDate: "2020-01-31", Status: "ACTIVE"})
		require.NoError(t, err)
		assert.Equal(t, entity.CardStatusExpired, resp.Status)
	})

	t.Run("estado desconocido es entrada inválida", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		_, err := uc.Update(context.Background(), admin, 1, dto.UpdateCardRequest{ExpirationDate: "2031-12-31", Status: "FROZEN"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("USER no puede actualizar", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		_, err := uc.Update(context.Background(), alice, 1, dto.UpdateCardRequest{ExpirationDate: "2031-12-31"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("tarjeta inexistente", func(t *testing.T) {
		uc := newUseCase(newFakeCardRepo())
		_, err := uc.Update(context.Background(), admin, 404, dto.UpdateCardRequest{ExpirationDate: "2031-12-31"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCardBlock(t *testing.T) {
	t.Run("el dueño la bloquea", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)

		require.NoError(t, uc.Block(context.Background(), alice, 1))
		assert.Equal(t, entity.CardStatusBlocked, repo.cards[1].Status)
	})

	t.Run("un no-dueño recibe NotFound", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		assert.ErrorIs(t, uc.Block(context.Background(), bob, 1), domain.ErrNotFound)
	})

	// ADMIN puede leerla pero no bloquearla: el bloqueo es del titular.
	t.Run("ADMIN no-dueño recibe Forbidden", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		assert.ErrorIs(t, uc.Block(context.Background(), admin, 1), domain.ErrForbidden)
	})
}

func TestCardActivate(t *testing.T) {
	t.Run("ADMIN reactiva una bloqueada", func(t *testing.T) {
		c := activeCard(1, alice.UserID, "4111222233334444")
		c.Status = entity.CardStatusBlocked
		repo := newFakeCardRepo(c)
		uc := newUseCase(repo)

		require.NoError(t, uc.Activate(context.Background(), admin, 1))
		assert.Equal(t, entity.CardStatusActive, repo.cards[1].Status)
	})

	t.Run("con fecha vencida queda EXPIRED", func(t *testing.T) {
		c := activeCard(1, alice.UserID, "4111222233334444")
		c.Status = entity.CardStatusBlocked
		c.ExpirationDate = time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
		repo := newFakeCardRepo(c)
		uc := newUseCase(repo)

		require.NoError(t, uc.Activate(context.Background(), admin, 1))
		assert.Equal(t, entity.CardStatusExpired, repo.cards[1].Status)
	})

	t.Run("USER no puede activar", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		assert.ErrorIs(t, uc.Activate(context.Background(), alice, 1), domain.ErrForbidden)
	})
}

func TestCardDelete(t *testing.T) {
	t.Run("ADMIN borra aunque el balance no sea cero", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)

		require.NoError(t, uc.Delete(context.Background(), admin, 1))
		_, existe := repo.cards[1]
		assert.False(t, existe)
	})

	t.Run("USER no puede borrar", func(t *testing.T) {
		repo := newFakeCardRepo(activeCard(1, alice.UserID, "4111222233334444"))
		uc := newUseCase(repo)
		assert.ErrorIs(t, uc.Delete(context.Background(), alice, 1), domain.ErrForbidden)
	})

	t.Run("tarjeta inexistente", func(t *testing.T) {
		uc := newUseCase(newFakeCardRepo())
		assert.ErrorIs(t, uc.Delete(context.Background(), admin, 404), domain.ErrNotFound)
	})
}

// El flujo completo del escenario de negocio: alta, consulta, transferencia
// de estado por bloqueo y reactivación.
func TestCardCicloDeVida(t *testing.T) {
	repo := newFakeCardRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	resp, err := uc.Create(ctx, admin, dto.CreateCardRequest{
		Number:         "5105105105105100",
		OwnerID:        alice.UserID,
		ExpirationDate: "2030-06-30",
		Balance:        decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Block(ctx, alice, resp.ID))
	vista, err := uc.GetByID(ctx, alice, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CardStatusBlocked, vista.Status)

	require.NoError(t, uc.Activate(ctx, admin, resp.ID))
	vista, err = uc.GetByID(ctx, alice, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CardStatusActive, vista.Status)
	assert.Equal(t, "**** **** **** 5100", vista.MaskedNumber)
	assert.Equal(t, alice.UserID, vista.OwnerID)
}
