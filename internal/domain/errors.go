package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidLineItem      = errors.New("línea inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrReturnNotSold        = errors.New("producto no vendido en la factura")
	ErrReturnExceedsAllowed = errors.New("cantidad a devolver excede lo permitido")
)

// InsufficientStockError indica qué SKU no tiene saldo suficiente y cuánto
// hay en mano. Toda la contabilización se revierte: ninguna línea queda
// aplicada.
type InsufficientStockError struct {
	SKU       string
	OnHand    int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: en mano %d, solicitado %d", e.SKU, e.OnHand, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ReturnRejection detalla por qué se rechaza un SKU en una devolución.
// Reason es ErrReturnNotSold o ErrReturnExceedsAllowed.
type ReturnRejection struct {
	SKU             string
	Reason          error
	Sold            int64
	AlreadyReturned int64
	Remaining       int64
	Requested       int64
}

// ReturnValidationError agrupa los rechazos del validador de elegibilidad.
// Se produce antes de cualquier mutación: la devolución no deja rastro.
type ReturnValidationError struct {
	Rejections []ReturnRejection
}

func (e *ReturnValidationError) Error() string {
	return fmt.Sprintf("devolución rechazada: %d línea(s) no elegibles", len(e.Rejections))
}

// Is responde true para cualquiera de los motivos presentes en los rechazos.
func (e *ReturnValidationError) Is(target error) bool {
	for _, r := range e.Rejections {
		if r.Reason == target {
			return true
		}
	}
	return false
}
