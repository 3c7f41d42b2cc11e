package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del puerto StockLedgerRepository sobre PostgreSQL (usable con pool o tx).
// El libro es estrictamente aditivo: solo INSERT y SELECT.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro de movimientos. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append inserta un asiento inmutable en el libro de movimientos.
func (r *StockLedgerRepo) Append(entry *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, date_time, product_id, location_id, movement_type, qty,
			unit_cost, unit_selling_price, reference_type, reference_no, customer_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.DateTime, entry.ProductID, entry.LocationID,
		entry.MovementType, entry.Qty, entry.UnitCost, entry.UnitSellingPrice,
		entry.ReferenceType, entry.ReferenceNo, entry.CustomerName, entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// List lista asientos del libro aplicando los filtros (producto, ubicación,
// rango de fechas) con paginación, del más reciente al más antiguo. Los
// asientos de una misma contabilización comparten date_time; seq desempata
// con el orden de inserción.
func (r *StockLedgerRepo) List(filter repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, date_time, product_id, location_id, movement_type, qty,
			unit_cost, unit_selling_price, reference_type, reference_no, customer_name, notes
		FROM stock_ledger WHERE 1=1`)
	args := []any{}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		sb.WriteString(" AND product_id = $" + strconv.Itoa(len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		sb.WriteString(" AND location_id = $" + strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(" AND date_time >= $" + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(" AND date_time <= $" + strconv.Itoa(len(args)))
	}
	args = append(args, filter.Limit)
	sb.WriteString(" ORDER BY date_time DESC, seq DESC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.DateTime, &e.ProductID, &e.LocationID, &e.MovementType, &e.Qty,
			&e.UnitCost, &e.UnitSellingPrice, &e.ReferenceType, &e.ReferenceNo, &e.CustomerName, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByMovementType agrega Qty por tipo de movimiento para un
// producto+ubicación (conciliación del saldo contra el libro).
func (r *StockLedgerRepo) SumByMovementType(productID, locationID string) (map[string]int64, error) {
	query := `
		SELECT movement_type, COALESCE(SUM(qty), 0)
		FROM stock_ledger WHERE product_id = $1 AND location_id = $2
		GROUP BY movement_type`
	rows, err := r.q.Query(context.Background(), query, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("sum ledger by movement type: %w", err)
	}
	defer rows.Close()
	sums := make(map[string]int64)
	for rows.Next() {
		var movementType string
		var total int64
		if err := rows.Scan(&movementType, &total); err != nil {
			return nil, fmt.Errorf("scan ledger sum: %w", err)
		}
		sums[movementType] = total
	}
	return sums, rows.Err()
}
