package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tarjetas-api/internal/application/card"
	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
)

// CardHandler maneja las peticiones HTTP para Card (protegido).
type CardHandler struct {
	uc *card.CardUseCase
}

// NewCardHandler construye el handler.
func NewCardHandler(uc *card.CardUseCase) *CardHandler {
	return &CardHandler{uc: uc}
}

// List godoc
// @Summary      Listar tarjetas paginadas
// @Description  USER ve solo las propias; ADMIN ve todas. Filtro opcional por estado.
// @Tags         cards
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"   default(0)
// @Param        size    query  int     false  "Tamaño"   default(10)
// @Param        status  query  string  false  "ACTIVE | BLOCKED | EXPIRED"
// @Success      200  {object}  dto.CardPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cards [get]
func (h *CardHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", 10),
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), c.Query("status"), page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tarjeta
// @Tags         cards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCardRequest  true  "number (16 dígitos), ownerId, expirationDate, balance"
// @Success      201   {object}  dto.CardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cards [post]
func (h *CardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarjeta por ID
// @Description  USER solo puede ver sus propias tarjetas; una ajena responde 404.
// @Tags         cards
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarjeta"
// @Success      200  {object}  dto.CardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cards/{id} [get]
func (h *CardHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarjeta
// @Description  expirationDate es obligatoria; status opcional. El owner nunca cambia.
// @Tags         cards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la tarjeta"
// @Param        body  body  dto.UpdateCardRequest  true  "expirationDate, status?"
// @Success      200   {object}  dto.CardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cards/{id} [put]
func (h *CardHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateCardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarjeta
// @Tags         cards
// @Security     Bearer
// @Param        id  path  int  true  "ID de la tarjeta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Block godoc
// @Summary      Bloquear tarjeta propia
// @Tags         cards
// @Security     Bearer
// @Param        id  path  int  true  "ID de la tarjeta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cards/{id}/block [post]
func (h *CardHandler) Block(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Block(c.Context(), GetPrincipal(c), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// Activate godoc
// @Summary      Activar tarjeta
// @Tags         cards
// @Security     Bearer
// @Param        id  path  int  true  "ID de la tarjeta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cards/{id}/activate [post]
func (h *CardHandler) Activate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Activate(c.Context(), GetPrincipal(c), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
