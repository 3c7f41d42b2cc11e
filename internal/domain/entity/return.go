package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return representa una devolución de venta (reverso parcial o total de
// una factura). InvoiceID es opcional: una devolución sin factura de
// origen no pasa por el validador de elegibilidad.
type Return struct {
	ID          string
	ReturnNo    string // único, asignado por secuencia (RET-00007)
	InvoiceID   string // factura de origen, opcional
	CustomerID  string // opcional
	LocationID  string
	Date        time.Time
	Status      string
	TotalRefund decimal.Decimal
	CreatedAt   time.Time
}

// ReturnLine representa una línea de devolución. LineNo es la posición
// dentro del documento (1..n, orden de captura).
type ReturnLine struct {
	ID        string
	ReturnID  string
	LineNo    int
	ProductID string
	Qty       int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
