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
	domainbilling "github.com/tu-usuario/retail-ledger-api/internal/domain/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// CreateReturnUseCase contabiliza una devolución: valida la elegibilidad
// contra la factura de origen (si la hay), crea la devolución con sus
// líneas, suma el saldo de stock y agrega los asientos RETURN, todo en
// una sola transacción.
type CreateReturnUseCase struct {
	txRunner     BillingTxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	returnRepo   repository.ReturnRepository
}

// NewCreateReturnUseCase construye el caso de uso.
func NewCreateReturnUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	returnRepo repository.ReturnRepository,
) *CreateReturnUseCase {
	return &CreateReturnUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		returnRepo:   returnRepo,
	}
}

// CreateReturn crea la devolución. Si viene factura de origen, la
// elegibilidad se re-evalúa dentro de la misma transacción que escribe
// las líneas, con la cabecera de la factura bloqueada (SELECT FOR
// UPDATE): dos devoluciones concurrentes contra la misma factura se
// serializan en ese candado y no pueden sobre-devolver entre las dos.
// El rechazo del validador aborta antes de cualquier mutación.
func (uc *CreateReturnUseCase) CreateReturn(ctx context.Context, in dto.CreateReturnRequest) (*dto.PostedDocResponse, error) {
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	customerID := in.CustomerID
	if in.InvoiceID != "" {
		inv, err := uc.invoiceRepo.GetByID(in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, domain.ErrNotFound
		}
		if customerID == "" {
			customerID = inv.CustomerID
		}
	}
	var customer *entity.Customer
	if customerID != "" {
		customer, err = uc.customerRepo.GetByID(customerID)
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
	ret := &entity.Return{
		ID:         uuid.New().String(),
		InvoiceID:  in.InvoiceID,
		CustomerID: customerID,
		LocationID: in.LocationID,
		Date:       now,
		Status:     entity.DocStatusPosted,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		ledgerRepo repository.StockLedgerRepository,
		invoiceRepo repository.InvoiceRepository,
		returnRepo repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		var invoiceNo string
		if in.InvoiceID != "" {
			// Candado del agregado: bloquear la cabecera antes de leer
			// vendido/devuelto cierra la carrera entre devoluciones
			// concurrentes contra la misma factura.
			inv, err := invoiceRepo.GetByIDForUpdate(in.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			invoiceNo = inv.InvoiceNo

			sold, returned, err := invoiceAggregates(invoiceRepo, returnRepo, in.InvoiceID)
			if err != nil {
				return err
			}
			requested := make([]domainbilling.RequestedLine, 0, len(lines))
			for _, line := range lines {
				requested = append(requested, domainbilling.RequestedLine{SKU: line.Product.SKU, Qty: line.Qty})
			}
			if rejections := domainbilling.ValidateReturn(sold, returned, requested); len(rejections) > 0 {
				return &domain.ReturnValidationError{Rejections: rejections}
			}
		}

		seq, err := seqRepo.Next(repository.SequenceReturn)
		if err != nil {
			return err
		}
		ret.ReturnNo = fmt.Sprintf("RET-%05d", seq)
		if err := returnRepo.Create(ret); err != nil {
			return err
		}

		notes := "Return"
		if invoiceNo != "" {
			notes = "Return against " + invoiceNo
		}
		var total decimal.Decimal
		for i, line := range lines {
			if err := returnRepo.CreateLine(&entity.ReturnLine{
				ID:        uuid.New().String(),
				ReturnID:  ret.ID,
				LineNo:    i + 1,
				ProductID: line.Product.ID,
				Qty:       line.Qty,
				UnitPrice: line.UnitPrice,
				LineTotal: line.LineTotal,
			}); err != nil {
				return err
			}
			// Sumar nunca viola la no-negatividad; el candado de fila
			// mantiene la conservación del saldo bajo concurrencia.
			if _, err := inventory.AdjustBalance(balanceRepo, line.Product, in.LocationID, line.Qty, now); err != nil {
				return err
			}
			if err := ledgerRepo.Append(&entity.StockLedgerEntry{
				ID:               uuid.New().String(),
				DateTime:         now,
				ProductID:        line.Product.ID,
				LocationID:       in.LocationID,
				MovementType:     entity.MovementTypeRETURN,
				Qty:              line.Qty,
				UnitCost:         line.Product.Cost,
				UnitSellingPrice: line.UnitPrice,
				ReferenceType:    entity.ReferenceTypeReturn,
				ReferenceNo:      ret.ReturnNo,
				CustomerName:     customerName,
				Notes:            notes,
			}); err != nil {
				return err
			}
			total = total.Add(line.LineTotal)
		}

		ret.TotalRefund = total
		return returnRepo.UpdateTotal(ret.ID, total)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostedDocResponse{ID: ret.ID, DocNo: ret.ReturnNo}, nil
}

// GetReturn obtiene una devolución por ID con sus líneas.
func (uc *CreateReturnUseCase) GetReturn(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.returnRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReturnResponse{
		ID:          ret.ID,
		ReturnNo:    ret.ReturnNo,
		InvoiceID:   ret.InvoiceID,
		CustomerID:  ret.CustomerID,
		LocationID:  ret.LocationID,
		Date:        ret.Date.Format(time.RFC3339),
		Status:      ret.Status,
		TotalRefund: ret.TotalRefund,
		Lines:       make([]dto.InvoiceLineResponse, 0, len(lines)),
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

// GetInvoiceReturnSummary devuelve, por SKU de la factura, lo vendido, lo
// ya devuelto y lo que aún es elegible para devolución (ayuda de UI de
// devoluciones; lectura sin bloqueo — la verdad final la decide el
// validador dentro de la transacción de contabilización).
func (uc *CreateReturnUseCase) GetInvoiceReturnSummary(ctx context.Context, invoiceNo string) (*dto.ReturnSummaryResponse, error) {
	if invoiceNo == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByNo(invoiceNo)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	aggs, err := uc.invoiceRepo.AggregateLinesBySKU(inv.ID)
	if err != nil {
		return nil, err
	}
	returned, err := uc.returnRepo.SumReturnedBySKU(inv.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReturnSummaryResponse{
		InvoiceID: inv.ID,
		InvoiceNo: inv.InvoiceNo,
		Total:     inv.Total,
		Lines:     make([]dto.ReturnSummaryLine, 0, len(aggs)),
	}
	for _, a := range aggs {
		ret := returned[a.SKU]
		remaining := a.SoldQty - ret
		if remaining < 0 {
			remaining = 0
		}
		resp.Lines = append(resp.Lines, dto.ReturnSummaryLine{
			SKU:              a.SKU,
			Name:             a.ProductName,
			SoldQty:          a.SoldQty,
			AlreadyReturned:  ret,
			RemainingAllowed: remaining,
			UnitPrice:        a.UnitPrice,
		})
	}
	return resp, nil
}

// invoiceAggregates lee los agregados vendido/devuelto por SKU de una
// factura con los repos de la transacción en curso.
func invoiceAggregates(
	invoiceRepo repository.InvoiceRepository,
	returnRepo repository.ReturnRepository,
	invoiceID string,
) (sold map[string]int64, returned map[string]int64, err error) {
	aggs, err := invoiceRepo.AggregateLinesBySKU(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	sold = make(map[string]int64, len(aggs))
	for _, a := range aggs {
		sold[a.SKU] = a.SoldQty
	}
	returned, err = returnRepo.SumReturnedBySKU(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return sold, returned, nil
}
