package repository

import (
	"time"

	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
)

// LedgerFilter filtros del listado del libro de movimientos.
type LedgerFilter struct {
	ProductID  string
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// StockLedgerRepository define el puerto del libro de movimientos.
// Estrictamente aditivo: no hay Update ni Delete — las correcciones son
// asientos nuevos, nunca mutación de la historia.
type StockLedgerRepository interface {
	Append(entry *entity.StockLedgerEntry) error
	List(filter LedgerFilter) ([]*entity.StockLedgerEntry, error)
	// SumByMovementType agrega Qty por tipo de movimiento para un
	// producto+ubicación (conciliación: IN + RETURN − OUT ± ADJUST).
	SumByMovementType(productID, locationID string) (map[string]int64, error)
}
