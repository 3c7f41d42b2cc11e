package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para Return y sus líneas.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	CreateLine(line *entity.ReturnLine) error
	UpdateTotal(returnID string, totalRefund decimal.Decimal) error
	GetByID(id string) (*entity.Return, error)
	GetLines(returnID string) ([]*entity.ReturnLine, error)
	// SumReturnedBySKU suma, por SKU, las cantidades de todas las
	// devoluciones que referencian la factura dada.
	SumReturnedBySKU(invoiceID string) (map[string]int64, error)
}
