package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario.
type InventoryHandler struct {
	movementUC *inventory.MovementUseCase
	queryUC    *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movementUC *inventory.MovementUseCase, queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, queryUC: queryUC}
}

// StockIn registra una entrada de mercancía (saldo + asiento IN).
// POST /api/inventory/stock-in
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.movementUC.StockIn(c.Context(), in); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Adjust registra un ajuste manual con signo (saldo + asiento ADJUST).
// POST /api/inventory/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.movementUC.Adjust(c.Context(), in); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Balance consulta el saldo actual de un producto en una ubicación.
// GET /api/inventory/balance?sku=...&location_id=...
func (h *InventoryHandler) Balance(c *fiber.Ctx) error {
	sku := c.Query("sku")
	locationID := c.Query("location_id")
	if sku == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y location_id requeridos"})
	}
	balance, err := h.queryUC.GetBalance(c.Context(), sku, locationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(balance)
}

// Reconcile concilia el saldo de un producto contra el libro de movimientos.
// GET /api/inventory/reconcile?sku=...&location_id=...
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	sku := c.Query("sku")
	locationID := c.Query("location_id")
	if sku == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y location_id requeridos"})
	}
	result, err := h.queryUC.Reconcile(c.Context(), sku, locationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(result)
}

// Ledger lista asientos del libro de movimientos (solo lectura).
// GET /api/inventory/ledger?sku=&location_id=&from=&to=&limit=&offset=
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = &t
	}

	entries, err := h.queryUC.ListLedger(c.Context(), c.Query("sku"), c.Query("location_id"), from, to, page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(entries)
}
