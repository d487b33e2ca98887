package transfer

import (
	"context"

	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/domain/access"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repo de tarjetas
// atado a ella. Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(cards repository.CardRepository) error) error
}

// TransferUseCase mueve fondos entre dos tarjetas activas del mismo titular,
// de forma atómica dentro de una transacción.
type TransferUseCase struct {
	tx TxRunner
}

// NewTransferUseCase construye el caso de uso de transferencias.
func NewTransferUseCase(tx TxRunner) *TransferUseCase {
	return &TransferUseCase{tx: tx}
}

// Transfer debita y acredita en una sola transacción. Las precondiciones se
// evalúan en este orden, cada una con su propio error:
//
//  1. tarjetas distintas          -> ErrInvalidInput
//  2. monto > 0, escala <= 2      -> ErrInvalidInput (redondear está prohibido)
//  3. ambas tarjetas existen      -> ErrNotFound
//  4. ambas del principal         -> ErrInvalidInput (no sondeable como 403)
//  5. ambas ACTIVE                -> ErrCardNotActive
//  6. balance origen >= monto     -> ErrInsufficientFunds
//
// Las filas se bloquean (FOR UPDATE) en orden ascendente de id sin importar
// cuál es el origen, para evitar deadlocks entre transferencias cruzadas
// sobre el mismo par. El commit es todo-o-nada: cualquier fallo después de
// las lecturas aborta la transacción y ningún balance cambia.
func (uc *TransferUseCase) Transfer(ctx context.Context, p entity.Principal, in dto.TransferRequest) error {
	if in.FromCardID == in.ToCardID {
		return domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() || in.Amount.Exponent() < -2 {
		return domain.ErrInvalidInput
	}

	return uc.tx.Run(ctx, func(cards repository.CardRepository) error {
		firstID, secondID := in.FromCardID, in.ToCardID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := cards.FindByIDForUpdate(ctx, firstID)
		if err != nil {
			return err
		}
		if first == nil {
			return domain.ErrNotFound
		}
		second, err := cards.FindByIDForUpdate(ctx, secondID)
		if err != nil {
			return err
		}
		if second == nil {
			return domain.ErrNotFound
		}

		from, to := first, second
		if from.ID != in.FromCardID {
			from, to = second, first
		}

		if !access.CanTransfer(p, from.OwnerID, to.OwnerID) {
			return domain.ErrInvalidInput
		}
		if from.Status != entity.CardStatusActive || to.Status != entity.CardStatusActive {
			return domain.ErrCardNotActive
		}
		if from.Balance.LessThan(in.Amount) {
			return domain.ErrInsufficientFunds
		}

		from.Balance = from.Balance.Sub(in.Amount)
		to.Balance = to.Balance.Add(in.Amount)
		return cards.SaveAll(ctx, []*entity.Card{from, to})
	})
}
