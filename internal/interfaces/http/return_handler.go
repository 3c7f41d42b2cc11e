package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
)

// ReturnHandler maneja las peticiones HTTP de devoluciones.
type ReturnHandler struct {
	uc *billing.CreateReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *billing.CreateReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create contabiliza una devolución y reingresa inventario. Si la
// devolución referencia una factura, cada línea debe pasar el validador
// de elegibilidad; un solo rechazo aborta todo.
// POST /api/returns
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	posted, err := h.uc.CreateReturn(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(posted)
}

// GetByID obtiene el detalle completo de una devolución.
// GET /api/returns/:id
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	ret, err := h.uc.GetReturn(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(ret)
}
