package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// QueryUseCase lecturas de inventario sin bloqueo: saldo actual y libro de
// movimientos. El libro es historia de solo lectura para conciliación y
// reportes; la verdad de "qué pasó" vive ahí.
type QueryUseCase struct {
	productRepo repository.ProductRepository
	balanceRepo repository.StockBalanceRepository
	ledgerRepo  repository.StockLedgerRepository
}

// NewQueryUseCase construye el caso de uso de lecturas.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	balanceRepo repository.StockBalanceRepository,
	ledgerRepo repository.StockLedgerRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo: productRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetBalance devuelve el saldo actual de un SKU en una ubicación
// (lectura sin bloqueo; saldo cero si nunca hubo movimiento).
func (uc *QueryUseCase) GetBalance(ctx context.Context, sku, locationID string) (*dto.BalanceResponse, error) {
	if sku == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceRepo.Get(product.ID, locationID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		SKU:        sku,
		LocationID: locationID,
		OnHand:     bal.OnHandQty,
		Reserved:   bal.ReservedQty,
		Available:  bal.Available(),
	}, nil
}

// Reconcile concilia el saldo materializado de un SKU en una ubicación
// contra el libro de movimientos: el saldo en mano debe ser
// IN + RETURN - OUT + ADJUST (los asientos ADJUST ya llevan signo). Una
// discrepancia delata una mutación de saldo que no pasó por la ruta
// transaccional.
func (uc *QueryUseCase) Reconcile(ctx context.Context, sku, locationID string) (*dto.ReconciliationResponse, error) {
	if sku == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceRepo.Get(product.ID, locationID)
	if err != nil {
		return nil, err
	}
	sums, err := uc.ledgerRepo.SumByMovementType(product.ID, locationID)
	if err != nil {
		return nil, err
	}
	derived := sums[entity.MovementTypeIN] + sums[entity.MovementTypeRETURN] -
		sums[entity.MovementTypeOUT] + sums[entity.MovementTypeADJUST]
	return &dto.ReconciliationResponse{
		SKU:          sku,
		LocationID:   locationID,
		OnHand:       bal.OnHandQty,
		LedgerOnHand: derived,
		Consistent:   bal.OnHandQty == derived,
		Sums:         sums,
	}, nil
}

// ListLedger lista asientos del libro con filtros opcionales de SKU,
// ubicación y rango de fechas.
func (uc *QueryUseCase) ListLedger(ctx context.Context, sku, locationID string, from, to *time.Time, page dto.PageRequest) ([]dto.LedgerEntryResponse, error) {
	page.DefaultPage()
	filter := repository.LedgerFilter{
		LocationID: locationID,
		From:       from,
		To:         to,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if sku != "" {
		product, err := uc.productRepo.GetBySKU(sku)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		filter.ProductID = product.ID
	}
	entries, err := uc.ledgerRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:               e.ID,
			DateTime:         e.DateTime.Format(time.RFC3339),
			ProductID:        e.ProductID,
			LocationID:       e.LocationID,
			MovementType:     e.MovementType,
			Qty:              e.Qty,
			UnitCost:         e.UnitCost,
			UnitSellingPrice: e.UnitSellingPrice,
			ReferenceType:    e.ReferenceType,
			ReferenceNo:      e.ReferenceNo,
			CustomerName:     e.CustomerName,
			Notes:            e.Notes,
		})
	}
	return out, nil
}
