package dto

import "github.com/shopspring/decimal"

// CardResponse vista de una tarjeta. El PAN solo sale enmascarado;
// el balance se serializa como string decimal.
type CardResponse struct {
	ID             int64           `json:"id"`
	MaskedNumber   string          `json:"maskedNumber"`
	OwnerID        int64           `json:"ownerId"`
	ExpirationDate string          `json:"expirationDate"` // ISO yyyy-mm-dd
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
}

// CreateCardRequest entrada para crear una tarjeta (solo ADMIN).
type CreateCardRequest struct {
	Number         string          `json:"number" validate:"required,len=16,numeric"`
	OwnerID        int64           `json:"ownerId" validate:"required"`
	ExpirationDate string          `json:"expirationDate" validate:"required"` // ISO yyyy-mm-dd
	Balance        decimal.Decimal `json:"balance"`
}

// UpdateCardRequest entrada para actualizar una tarjeta (solo ADMIN).
// ExpirationDate es obligatoria; Status es opcional.
type UpdateCardRequest struct {
	ExpirationDate string `json:"expirationDate" validate:"required"`
	Status         string `json:"status,omitempty"`
}

// CardPageResponse página de tarjetas con metadatos.
type CardPageResponse struct {
	Content []CardResponse `json:"content"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
	Total   int64          `json:"total"`
}
