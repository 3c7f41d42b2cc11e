package inventory

import (
	"time"

	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// AdjustBalance es la única ruta de mutación del saldo: bloquea la fila
// (product, location) por el resto de la transacción del caller, aplica el
// delta y rechaza con InsufficientStockError si el resultado quedara
// negativo. La fila se crea en cero si no existe (primer movimiento).
func AdjustBalance(
	balanceRepo repository.StockBalanceRepository,
	product *entity.Product,
	locationID string,
	delta int64,
	now time.Time,
) (*entity.StockBalance, error) {
	bal, err := balanceRepo.GetForUpdate(product.ID, locationID)
	if err != nil {
		return nil, err
	}
	newQty := bal.OnHandQty + delta
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			SKU:       product.SKU,
			OnHand:    bal.OnHandQty,
			Requested: -delta,
		}
	}
	bal.OnHandQty = newQty
	bal.LastUpdated = now
	if err := balanceRepo.Upsert(bal); err != nil {
		return nil, err
	}
	return bal, nil
}
