package entity

import "time"

// StockBalance representa el saldo actual de un producto en una ubicación.
// Clave única (product, location). Se crea perezosamente en el primer
// movimiento y solo se muta por la ruta bloqueada (SELECT FOR UPDATE).
type StockBalance struct {
	ProductID   string
	LocationID  string
	OnHandQty   int64
	ReservedQty int64
	LastUpdated time.Time
}

// Available devuelve la cantidad disponible (en mano menos reservada).
func (b *StockBalance) Available() int64 {
	return b.OnHandQty - b.ReservedQty
}
