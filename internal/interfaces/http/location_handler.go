package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones de inventario.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crea una ubicación (tienda o bodega).
// POST /api/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	location, err := h.uc.Create(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// GetByID obtiene una ubicación por ID.
// GET /api/locations/:id
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	location, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(location)
}

// List lista ubicaciones con paginación.
// GET /api/locations
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	locations, err := h.uc.List(page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(locations)
}
