package dto

import "github.com/shopspring/decimal"

// TransferRequest entrada para una transferencia entre dos tarjetas propias.
type TransferRequest struct {
	FromCardID int64           `json:"fromCardId" validate:"required"`
	ToCardID   int64           `json:"toCardId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}
