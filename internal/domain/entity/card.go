package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
)

// Estados válidos para Card.
const (
	CardStatusActive  = "ACTIVE"
	CardStatusBlocked = "BLOCKED"
	CardStatusExpired = "EXPIRED"
)

// Card representa una tarjeta bancaria. Number es el PAN cifrado (nunca en claro)
// y OwnerID no cambia después de la creación.
type Card struct {
	ID             int64
	Number         string // PAN cifrado: base64(nonce || ciphertext AES-GCM)
	OwnerID        int64
	ExpirationDate time.Time // solo fecha (día civil del titular)
	Status         string    // ACTIVE, BLOCKED, EXPIRED
	Balance        decimal.Decimal
}

// NormalizeStatus valida y normaliza un string de estado (case-insensitive).
// Retorna ErrInvalidInput si no pertenece al conjunto cerrado.
func NormalizeStatus(s string) (string, error) {
	switch strings.ToUpper(s) {
	case CardStatusActive:
		return CardStatusActive, nil
	case CardStatusBlocked:
		return CardStatusBlocked, nil
	case CardStatusExpired:
		return CardStatusExpired, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// IsExpiredAt indica si la fecha de expiración es estrictamente anterior al día dado.
func (c *Card) IsExpiredAt(today time.Time) bool {
	exp := dateOnly(c.ExpirationDate)
	return exp.Before(dateOnly(today))
}

// ApplyExpiration fuerza el estado EXPIRED si la fecha de expiración ya pasó.
// Debe invocarse en cada escritura persistida (regla del ciclo de vida).
func (c *Card) ApplyExpiration(today time.Time) {
	if c.IsExpiredAt(today) {
		c.Status = CardStatusExpired
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
