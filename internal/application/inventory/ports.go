package inventory

import (
	"context"

	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para los movimientos
// de stock: o todo el movimiento queda contabilizado (saldo + asiento) o
// nada lo hace.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}
