package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeRetail      = "retail"
	CustomerTypeWholesale   = "wholesale"
	CustomerTypeLocalSupply = "local_supply"
)

// Customer representa un cliente (opcional en facturas y devoluciones).
type Customer struct {
	ID           string
	Name         string
	Phone        string
	Address      string
	CustomerType string // retail, wholesale, local_supply
	CreatedAt    time.Time
}
