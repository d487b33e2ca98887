package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/application/transfer"
)

// TransferHandler maneja las transferencias entre tarjetas propias.
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Transferir fondos entre dos tarjetas propias
// @Description  Débito y crédito atómicos; ambas tarjetas deben estar ACTIVE.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.TransferRequest  true  "fromCardId, toCardId, amount (> 0)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(c.Context(), GetPrincipal(c), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
