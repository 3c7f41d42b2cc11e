package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// CreateInvoiceUseCase contabiliza una venta: crea la factura con sus
// líneas, descuenta el saldo de stock y agrega los asientos OUT del libro,
// todo en una sola transacción. O todas las líneas quedan contabilizadas
// con el total consistente, o ninguna.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateInvoice crea la factura. Por cada línea, en orden de entrada:
// bloquea el saldo (product, location), descuenta la cantidad — stock
// insuficiente aborta la factura completa con el SKU y el saldo en mano —
// y agrega el asiento OUT con costo actual y precio resuelto. El número
// de factura es un consecutivo monotónico de secuencia.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.PostedDocResponse, error) {
	// Validaciones de solo lectura, fuera de la transacción (fail-fast)
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	var customer *entity.Customer
	if in.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}
	lines, err := resolveLines(uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		LocationID: in.LocationID,
		Date:       now,
		Status:     entity.DocStatusPosted,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(repository.SequenceInvoice)
		if err != nil {
			return err
		}
		inv.InvoiceNo = fmt.Sprintf("INV-%05d", seq)
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}

		var total decimal.Decimal
		for i, line := range lines {
			// Bloqueo + descuento; InsufficientStockError revierte todo
			if _, err := inventory.AdjustBalance(balanceRepo, line.Product, in.LocationID, -line.Qty, now); err != nil {
				return err
			}
			if err := invoiceRepo.CreateLine(&entity.InvoiceLine{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				LineNo:    i + 1,
				ProductID: line.Product.ID,
				Qty:       line.Qty,
				UnitPrice: line.UnitPrice,
				LineTotal: line.LineTotal,
			}); err != nil {
				return err
			}
			if err := ledgerRepo.Append(&entity.StockLedgerEntry{
				ID:               uuid.New().String(),
				DateTime:         now,
				ProductID:        line.Product.ID,
				LocationID:       in.LocationID,
				MovementType:     entity.MovementTypeOUT,
				Qty:              line.Qty,
				UnitCost:         line.Product.Cost,
				UnitSellingPrice: line.UnitPrice,
				ReferenceType:    entity.ReferenceTypeInvoice,
				ReferenceNo:      inv.InvoiceNo,
				CustomerName:     customerName,
				Notes:            "Sale",
			}); err != nil {
				return err
			}
			total = total.Add(line.LineTotal)
		}

		inv.Subtotal = total
		inv.Total = total
		return invoiceRepo.UpdateTotals(inv.ID, inv.Subtotal, inv.Total)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostedDocResponse{ID: inv.ID, DocNo: inv.InvoiceNo}, nil
}

// GetInvoice obtiene una factura por ID con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		InvoiceNo:  inv.InvoiceNo,
		CustomerID: inv.CustomerID,
		LocationID: inv.LocationID,
		Date:       inv.Date.Format(time.RFC3339),
		Status:     inv.Status,
		Subtotal:   inv.Subtotal,
		Total:      inv.Total,
		Lines:      make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:        l.ID,
			LineNo:    l.LineNo,
			ProductID: l.ProductID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return resp, nil
}
