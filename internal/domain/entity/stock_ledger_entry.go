package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN     = "IN"     // entrada
	MovementTypeOUT    = "OUT"    // salida (venta)
	MovementTypeRETURN = "RETURN" // devolución
	MovementTypeADJUST = "ADJUST" // ajuste libre
)

// Tipos de referencia de un asiento.
const (
	ReferenceTypeInvoice = "INV"
	ReferenceTypeReturn  = "RET"
	ReferenceTypeStockIn = "GRN" // entrada de mercancía
	ReferenceTypeAdjust  = "ADJ"
)

// StockLedgerEntry es un asiento inmutable del libro de movimientos.
// Qty es magnitud positiva para IN/OUT/RETURN; para ADJUST conserva el
// signo de la corrección. UnitCost y UnitSellingPrice son una instantánea
// al momento del movimiento: el libro registra lo que ocurrió, no lo que
// el catálogo dice hoy.
type StockLedgerEntry struct {
	ID               string
	DateTime         time.Time
	ProductID        string
	LocationID       string
	MovementType     string
	Qty              int64
	UnitCost         decimal.Decimal
	UnitSellingPrice decimal.Decimal
	ReferenceType    string
	ReferenceNo      string
	CustomerName     string
	Notes            string
}
