package repository

import "github.com/tu-usuario/retail-ledger-api/internal/domain/entity"

// StockBalanceRepository define el puerto para consultar/actualizar el
// saldo por producto+ubicación. Ninguna otra ruta puede mutar on_hand_qty.
type StockBalanceRepository interface {
	// Get lectura sin bloqueo (reportes). Devuelve saldo cero si la fila no existe.
	Get(productID, locationID string) (*entity.StockBalance, error)
	// GetForUpdate crea la fila en cero si no existe y la bloquea
	// (SELECT FOR UPDATE) por el resto de la transacción.
	GetForUpdate(productID, locationID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
}
