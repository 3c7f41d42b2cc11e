package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado de documentos contabilizados. Las facturas y devoluciones se
// crean directamente en POSTED o no se crean (contabilización atómica).
const DocStatusPosted = "POSTED"

// Invoice representa la cabecera de una factura de venta.
type Invoice struct {
	ID         string
	InvoiceNo  string // único, asignado por secuencia (INV-00042)
	CustomerID string // opcional (venta mostrador si vacío)
	LocationID string
	Date       time.Time
	Status     string
	Subtotal   decimal.Decimal
	Total      decimal.Decimal // sin impuestos ni descuentos: igual al subtotal
	CreatedAt  time.Time
}

// InvoiceLine representa una línea de factura. LineNo es la posición de
// la línea dentro del documento (1..n, orden de captura); el ID es
// aleatorio y no ordena.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	LineNo    int
	ProductID string
	Qty       int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Qty * UnitPrice, sin redondeo independiente
}
