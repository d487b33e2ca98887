package card

import (
	"context"
	"time"

	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/domain/access"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PanVault es el contrato mínimo que el caso de uso necesita del vault.
// Lo implementa vault.PanVault.
type PanVault interface {
	Encrypt(pan string) (string, error)
	Mask(stored string) (string, error)
}

// CardUseCase casos de uso del ciclo de vida de tarjetas. Toda operación
// recibe el principal de forma explícita; aquí se consulta el evaluador de
// acceso y se aplican las reglas de expiración y de estado.
type CardUseCase struct {
	cardRepo repository.CardRepository
	userRepo repository.UserRepository
	vault    PanVault
}

// NewCardUseCase construye el caso de uso de tarjetas.
func NewCardUseCase(cardRepo repository.CardRepository, userRepo repository.UserRepository, vault PanVault) *CardUseCase {
	return &CardUseCase{cardRepo: cardRepo, userRepo: userRepo, vault: vault}
}

// List devuelve una página de tarjetas. ADMIN ve todas (opcionalmente por
// estado); USER solo las propias. Un principal sin ninguno de los dos roles
// recibe ErrForbidden.
func (uc *CardUseCase) List(ctx context.Context, p entity.Principal, status string, page dto.PageRequest) (*dto.CardPageResponse, error) {
	page.Normalize()
	if status != "" {
		normalized, err := entity.NormalizeStatus(status)
		if err != nil {
			return nil, err
		}
		status = normalized
	}

	var (
		cards []*entity.Card
		total int64
		err   error
	)
	switch {
	case access.CanListAllCards(p):
		if status != "" {
			cards, err = uc.cardRepo.FindByStatus(ctx, status, page.Size, page.Offset())
			if err == nil {
				total, err = uc.cardRepo.CountByStatus(ctx, status)
			}
		} else {
			cards, err = uc.cardRepo.FindAll(ctx, page.Size, page.Offset())
			if err == nil {
				total, err = uc.cardRepo.CountAll(ctx)
			}
		}
	case access.CanListOwnCards(p):
		if status != "" {
			cards, err = uc.cardRepo.FindByOwnerAndStatus(ctx, p.UserID, status, page.Size, page.Offset())
			if err == nil {
				total, err = uc.cardRepo.CountByOwnerAndStatus(ctx, p.UserID, status)
			}
		} else {
			cards, err = uc.cardRepo.FindByOwner(ctx, p.UserID, page.Size, page.Offset())
			if err == nil {
				total, err = uc.cardRepo.CountByOwner(ctx, p.UserID)
			}
		}
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	content := make([]dto.CardResponse, 0, len(cards))
	for _, c := range cards {
		view, err := uc.toResponse(c)
		if err != nil {
			return nil, err
		}
		content = append(content, *view)
	}
	return &dto.CardPageResponse{Content: content, Page: page.Page, Size: page.Size, Total: total}, nil
}

// Create crea una tarjeta para un titular existente (solo ADMIN). El PAN se
// cifra antes de tocar la persistencia; el estado inicial es ACTIVE salvo
// que la fecha de expiración ya haya pasado.
func (uc *CardUseCase) Create(ctx context.Context, p entity.Principal, in dto.CreateCardRequest) (*dto.CardResponse, error) {
	if !access.CanCreateCard(p) {
		return nil, domain.ErrForbidden
	}
	if !isValidPan(in.Number) {
		return nil, domain.ErrInvalidInput
	}
	expiration, err := parseDate(in.ExpirationDate)
	if err != nil {
		return nil, err
	}
	if in.Balance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	owner, err := uc.userRepo.FindByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}

	stored, err := uc.vault.Encrypt(in.Number)
	if err != nil {
		return nil, err
	}
	card := &entity.Card{
		Number:         stored,
		OwnerID:        owner.ID,
		ExpirationDate: expiration,
		Status:         entity.CardStatusActive,
		Balance:        in.Balance,
	}
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return uc.toResponse(card)
}

// GetByID devuelve una tarjeta visible para el principal. Un no-dueño sin
// rol ADMIN recibe ErrNotFound (los ids no son sondeables).
func (uc *CardUseCase) GetByID(ctx context.Context, p entity.Principal, id int64) (*dto.CardResponse, error) {
	card, err := uc.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(card)
}

// Update actualiza la fecha de expiración (obligatoria) y opcionalmente el
// estado (solo ADMIN). Un string de estado desconocido produce
// ErrInvalidInput. Si la tarjeta estaba EXPIRED y la nueva fecha está en el
// futuro, aplica el estado explícito o ACTIVE por defecto. El owner nunca
// cambia.
func (uc *CardUseCase) Update(ctx context.Context, p entity.Principal, id int64, in dto.UpdateCardRequest) (*dto.CardResponse, error) {
	if !access.CanUpdateCard(p) {
		return nil, domain.ErrForbidden
	}
	card, err := uc.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	expiration, err := parseDate(in.ExpirationDate)
	if err != nil {
		return nil, err
	}

	wasExpired := card.Status == entity.CardStatusExpired
	card.ExpirationDate = expiration
	if in.Status != "" {
		status, err := entity.NormalizeStatus(in.Status)
		if err != nil {
			return nil, err
		}
		card.Status = status
	} else if wasExpired && !card.IsExpiredAt(time.Now()) {
		card.Status = entity.CardStatusActive
	}

	// La regla de expiración del repo prevalece si la fecha sigue en el pasado.
	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return uc.toResponse(card)
}

// Delete elimina una tarjeta (solo ADMIN). El borrado es incondicional:
// no se exige balance cero.
func (uc *CardUseCase) Delete(ctx context.Context, p entity.Principal, id int64) error {
	if !access.CanDeleteCard(p) {
		return domain.ErrForbidden
	}
	card, err := uc.cardRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if card == nil {
		return domain.ErrNotFound
	}
	return uc.cardRepo.Delete(ctx, card.ID)
}

// Block bloquea una tarjeta a petición del titular (rol USER y ser dueño).
// Un no-dueño que tampoco puede leerla recibe ErrNotFound.
func (uc *CardUseCase) Block(ctx context.Context, p entity.Principal, id int64) error {
	card, err := uc.cardRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if card == nil {
		return domain.ErrNotFound
	}
	if !access.CanBlockCard(p, card.OwnerID) {
		if !access.CanReadCard(p, card.OwnerID) {
			return domain.ErrNotFound
		}
		return domain.ErrForbidden
	}
	card.Status = entity.CardStatusBlocked
	return uc.cardRepo.Update(ctx, card)
}

// Activate activa una tarjeta bloqueada (solo ADMIN). Si la fecha de
// expiración ya pasó, la regla del repo persiste EXPIRED de todos modos.
func (uc *CardUseCase) Activate(ctx context.Context, p entity.Principal, id int64) error {
	if !access.CanActivateCard(p) {
		return domain.ErrForbidden
	}
	card, err := uc.cardRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if card == nil {
		return domain.ErrNotFound
	}
	card.Status = entity.CardStatusActive
	return uc.cardRepo.Update(ctx, card)
}

// loadVisible carga la tarjeta y aplica la regla de visibilidad: el que no
// puede leerla recibe ErrNotFound, nunca ErrForbidden.
func (uc *CardUseCase) loadVisible(ctx context.Context, p entity.Principal, id int64) (*entity.Card, error) {
	card, err := uc.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil || !access.CanReadCard(p, card.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return card, nil
}

func (uc *CardUseCase) toResponse(c *entity.Card) (*dto.CardResponse, error) {
	masked, err := uc.vault.Mask(c.Number)
	if err != nil {
		return nil, err
	}
	return &dto.CardResponse{
		ID:             c.ID,
		MaskedNumber:   masked,
		OwnerID:        c.OwnerID,
		ExpirationDate: c.ExpirationDate.Format(dateLayout),
		Status:         c.Status,
		Balance:        c.Balance,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// isValidPan exige exactamente 16 dígitos.
func isValidPan(pan string) bool {
	if len(pan) != 16 {
		return false
	}
	for _, r := range pan {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
