package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByCode resuelve por SKU o por barcode_value (escaneo).
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	UpdateBarcode(productID, barcodeValue string) error
	List(limit, offset int) ([]*entity.Product, error)
}
