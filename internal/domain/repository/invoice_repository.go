package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
)

// InvoiceSKUAggregate agrega las líneas de una factura por SKU (para el
// resumen de devoluciones y el validador de elegibilidad).
type InvoiceSKUAggregate struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitPrice   decimal.Decimal
	SoldQty     int64
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	UpdateTotals(invoiceID string, subtotal, total decimal.Decimal) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNo(invoiceNo string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE); serializa
	// las devoluciones concurrentes contra la misma factura.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetLines(invoiceID string) ([]*entity.InvoiceLine, error)
	// AggregateLinesBySKU suma cantidades vendidas por SKU.
	AggregateLinesBySKU(invoiceID string) ([]InvoiceSKUAggregate, error)
}
