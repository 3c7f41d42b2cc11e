package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
)

// Códigos de rechazo por línea.
const (
	itemCodeNotSold        = "NOT_SOLD"
	itemCodeExceedsAllowed = "EXCEEDS_ALLOWED"
)

// writeDomainError traduce errores de dominio a respuestas HTTP. Los
// errores tipados (stock insuficiente, devolución rechazada) llevan el
// detalle por línea en Items.
func writeDomainError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		onHand := stockErr.OnHand
		requested := stockErr.Requested
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stockErr.Error(),
			Items: []dto.ErrorItem{{
				SKU:       stockErr.SKU,
				Code:      "INSUFFICIENT_STOCK",
				OnHand:    &onHand,
				Requested: &requested,
			}},
		})
	}
	var retErr *domain.ReturnValidationError
	if errors.As(err, &retErr) {
		items := make([]dto.ErrorItem, 0, len(retErr.Rejections))
		for _, rej := range retErr.Rejections {
			code := itemCodeNotSold
			if rej.Reason == domain.ErrReturnExceedsAllowed {
				code = itemCodeExceedsAllowed
			}
			sold, already, remaining, requested := rej.Sold, rej.AlreadyReturned, rej.Remaining, rej.Requested
			items = append(items, dto.ErrorItem{
				SKU:             rej.SKU,
				Code:            code,
				Sold:            &sold,
				AlreadyReturned: &already,
				Remaining:       &remaining,
				Requested:       &requested,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "RETURN_REJECTED",
			Message: retErr.Error(),
			Items:   items,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidLineItem):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
