package billing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// resolvedLine es una línea ya validada con producto y precio resueltos.
type resolvedLine struct {
	Product   *entity.Product
	Qty       int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// resolveLines valida y resuelve las líneas de una factura o devolución,
// en el orden de entrada. Regla dura de precio: el precio explícito de la
// línea si viene, si no el precio de venta del producto. Falla rápido:
// cualquier línea inválida aborta antes de tocar la transacción.
func resolveLines(productRepo repository.ProductRepository, items []dto.LineItemRequest) ([]resolvedLine, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidLineItem
	}
	lines := make([]resolvedLine, 0, len(items))
	for _, item := range items {
		if item.SKU == "" || item.Qty < 1 {
			return nil, domain.ErrInvalidLineItem
		}
		if item.Price != nil && item.Price.IsNegative() {
			return nil, domain.ErrInvalidLineItem
		}
		product, err := productRepo.GetBySKU(item.SKU)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.SellingPrice
		if item.Price != nil {
			unitPrice = *item.Price
		}
		qty := decimal.NewFromInt(item.Qty)
		lines = append(lines, resolvedLine{
			Product:   product,
			Qty:       item.Qty,
			UnitPrice: unitPrice,
			LineTotal: unitPrice.Mul(qty),
		})
	}
	return lines, nil
}
