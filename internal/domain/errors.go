package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP son el
// único lugar que los traduce a códigos de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientFunds = errors.New("fondos insuficientes")
	ErrCardNotActive     = errors.New("la tarjeta no está activa")
	ErrVaultFailure      = errors.New("fallo de cifrado")
)
