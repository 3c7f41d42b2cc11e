package billing

import (
	"context"

	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios que tocan los motores de contabilización. Cada
// contabilización (factura o devolución) es exactamente una transacción:
// los bloqueos de fila que tomen los repos viven hasta Commit/Rollback.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		invoiceRepo repository.InvoiceRepository,
		returnRepo repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
