package entity

import "time"

// StockLocation representa una ubicación física de inventario (tienda o bodega).
type StockLocation struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}
