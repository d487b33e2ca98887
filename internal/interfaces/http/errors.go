package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
)

// mapDomainError traduce los errores sentinela del dominio a códigos HTTP.
// Los handlers son el único lugar que hace esta traducción; el dominio nunca
// conoce códigos de estado. Ningún éxito parcial se reporta jamás.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrInsufficientFunds):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: "fondos insuficientes en la tarjeta de origen"})
	case errors.Is(err, domain.ErrCardNotActive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CARD_NOT_ACTIVE", Message: "la tarjeta no está en estado ACTIVE"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "username o email ya registrados"})
	default:
		// ErrVaultFailure y fallos de persistencia llegan aquí: nunca se
		// filtran detalles internos en el cuerpo.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
