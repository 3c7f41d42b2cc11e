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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación del puerto ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, return_no, invoice_id, customer_id, location_id, date, status, total_refund, created_at`

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var invoiceID, customerID *string
	err := row.Scan(
		&ret.ID, &ret.ReturnNo, &invoiceID, &customerID, &ret.LocationID,
		&ret.Date, &ret.Status, &ret.TotalRefund, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if invoiceID != nil {
		ret.InvoiceID = *invoiceID
	}
	if customerID != nil {
		ret.CustomerID = *customerID
	}
	return &ret, nil
}

// Create persiste la cabecera de una devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, return_no, invoice_id, customer_id, location_id, date, status, total_refund, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.ReturnNo, nullIfEmpty(ret.InvoiceID), nullIfEmpty(ret.CustomerID),
		ret.LocationID, ret.Date, ret.Status, ret.TotalRefund, ret.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de devolución con su posición en el documento.
func (r *ReturnRepo) CreateLine(line *entity.ReturnLine) error {
	query := `
		INSERT INTO return_lines (id, return_id, line_no, product_id, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ReturnID, line.LineNo, line.ProductID, line.Qty, line.UnitPrice, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert return line: %w", err)
	}
	return nil
}

// UpdateTotal fija el total a reembolsar una vez sumadas las líneas.
func (r *ReturnRepo) UpdateTotal(returnID string, totalRefund decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE returns SET total_refund = $2 WHERE id = $1`,
		returnID, totalRefund,
	)
	if err != nil {
		return fmt.Errorf("update return total: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	ret, err := scanReturn(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return ret, nil
}

// GetLines obtiene las líneas de una devolución en el orden del documento.
func (r *ReturnRepo) GetLines(returnID string) ([]*entity.ReturnLine, error) {
	query := `
		SELECT id, return_id, line_no, product_id, qty, unit_price, line_total
		FROM return_lines WHERE return_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("get return lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.ReturnLine
	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(&l.ID, &l.ReturnID, &l.LineNo, &l.ProductID, &l.Qty, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan return line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// SumReturnedBySKU suma, por SKU, las cantidades ya devueltas de todas las
// devoluciones que referencian la factura dada.
func (r *ReturnRepo) SumReturnedBySKU(invoiceID string) (map[string]int64, error) {
	query := `
		SELECT p.sku, COALESCE(SUM(rl.qty), 0)
		FROM return_lines rl
		JOIN returns ret ON ret.id = rl.return_id
		JOIN products p ON p.id = rl.product_id
		WHERE ret.invoice_id = $1
		GROUP BY p.sku`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("sum returned by sku: %w", err)
	}
	defer rows.Close()
	sums := make(map[string]int64)
	for rows.Next() {
		var sku string
		var qty int64
		if err := rows.Scan(&sku, &qty); err != nil {
			return nil, fmt.Errorf("scan returned sum: %w", err)
		}
		sums[sku] = qty
	}
	return sums, rows.Err()
}
