package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Cost es el costo promedio ponderado (se recalcula en entradas de stock);
// SellingPrice es el precio de venta canónico — no hay cadena de fallbacks.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Color        string
	Size         string
	Cost         decimal.Decimal
	SellingPrice decimal.Decimal
	BarcodeValue string // por defecto igual al SKU (se asigna al activar)
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
