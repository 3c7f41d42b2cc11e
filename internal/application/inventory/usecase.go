package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	domaininv "github.com/tu-usuario/retail-ledger-api/internal/domain/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// MovementUseCase registra movimientos simples de stock (IN y ADJUST) de
// forma transaccional, con bloqueo de fila y Commit/Rollback. Las salidas
// por venta y las devoluciones pasan por los motores de facturación.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// StockIn registra una entrada de mercancía: bloquea el saldo, suma la
// cantidad, recalcula el costo promedio ponderado si llega costo unitario
// y agrega el asiento IN con la instantánea de costo/precio.
func (uc *MovementUseCase) StockIn(ctx context.Context, in dto.StockInRequest) error {
	if in.SKU == "" || in.Qty < 1 {
		return domain.ErrInvalidLineItem
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.ErrInvalidLineItem
	}
	product, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		bal, err := balanceRepo.GetForUpdate(product.ID, in.LocationID)
		if err != nil {
			return err
		}
		unitCost := product.Cost
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
			newCost := domaininv.WeightedAverageCost(bal.OnHandQty, product.Cost, in.Qty, unitCost)
			if err := productRepo.UpdateCost(product.ID, newCost); err != nil {
				return err
			}
		}
		bal.OnHandQty += in.Qty
		bal.LastUpdated = now
		if err := balanceRepo.Upsert(bal); err != nil {
			return err
		}
		refType := ""
		if in.ReferenceNo != "" {
			refType = entity.ReferenceTypeStockIn
		}
		return ledgerRepo.Append(&entity.StockLedgerEntry{
			ID:               uuid.New().String(),
			DateTime:         now,
			ProductID:        product.ID,
			LocationID:       in.LocationID,
			MovementType:     entity.MovementTypeIN,
			Qty:              in.Qty,
			UnitCost:         unitCost,
			UnitSellingPrice: product.SellingPrice,
			ReferenceType:    refType,
			ReferenceNo:      in.ReferenceNo,
			Notes:            in.Notes,
		})
	})
}

// Adjust registra una corrección libre de saldo. Qty trae el signo del
// delta; el asiento ADJUST lo conserva. Un ajuste negativo que dejara el
// saldo bajo cero se rechaza con la misma disciplina que una venta.
func (uc *MovementUseCase) Adjust(ctx context.Context, in dto.AdjustRequest) error {
	if in.SKU == "" || in.Qty == 0 || in.Notes == "" {
		return domain.ErrInvalidLineItem
	}
	product, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.ProductRepository,
	) error {
		if _, err := AdjustBalance(balanceRepo, product, in.LocationID, in.Qty, now); err != nil {
			return err
		}
		return ledgerRepo.Append(&entity.StockLedgerEntry{
			ID:               uuid.New().String(),
			DateTime:         now,
			ProductID:        product.ID,
			LocationID:       in.LocationID,
			MovementType:     entity.MovementTypeADJUST,
			Qty:              in.Qty,
			UnitCost:         product.Cost,
			UnitSellingPrice: product.SellingPrice,
			ReferenceType:    entity.ReferenceTypeAdjust,
			Notes:            in.Notes,
		})
	})
}
