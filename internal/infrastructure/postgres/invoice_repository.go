package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_no, customer_id, location_id, date, status, subtotal, total, created_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceNo, &customerID, &inv.LocationID, &inv.Date,
		&inv.Status, &inv.Subtotal, &inv.Total, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		inv.CustomerID = *customerID
	}
	return &inv, nil
}

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_no, customer_id, location_id, date, status, subtotal, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNo, nullIfEmpty(invoice.CustomerID), invoice.LocationID,
		invoice.Date, invoice.Status, invoice.Subtotal, invoice.Total, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura con su posición en el documento.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, line_no, product_id, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.LineNo, line.ProductID, line.Qty, line.UnitPrice, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// UpdateTotals fija los totales de la cabecera una vez sumadas las líneas.
func (r *InvoiceRepo) UpdateTotals(invoiceID string, subtotal, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET subtotal = $2, total = $3 WHERE id = $1`,
		invoiceID, subtotal, total,
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNo obtiene una factura por número de documento.
func (r *InvoiceRepo) GetByNo(invoiceNo string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_no = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, invoiceNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by no: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate obtiene la factura bloqueando su cabecera (SELECT FOR
// UPDATE). Dos devoluciones concurrentes contra la misma factura se
// serializan en este bloqueo.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// GetLines obtiene las líneas de una factura en el orden del documento.
// El ID de línea es un UUID aleatorio: el orden lo da line_no.
func (r *InvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, line_no, product_id, qty, unit_price, line_total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.LineNo, &l.ProductID, &l.Qty, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// AggregateLinesBySKU suma las cantidades vendidas por SKU en una factura
// (insumo del validador de elegibilidad de devoluciones).
func (r *InvoiceRepo) AggregateLinesBySKU(invoiceID string) ([]repository.InvoiceSKUAggregate, error) {
	query := `
		SELECT il.product_id, p.sku, p.name, MIN(il.unit_price), COALESCE(SUM(il.qty), 0)
		FROM invoice_lines il
		JOIN products p ON p.id = il.product_id
		WHERE il.invoice_id = $1
		GROUP BY il.product_id, p.sku, p.name
		ORDER BY p.sku`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("aggregate invoice lines: %w", err)
	}
	defer rows.Close()
	var aggs []repository.InvoiceSKUAggregate
	for rows.Next() {
		var a repository.InvoiceSKUAggregate
		if err := rows.Scan(&a.ProductID, &a.SKU, &a.ProductName, &a.UnitPrice, &a.SoldQty); err != nil {
			return nil, fmt.Errorf("scan invoice aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}
