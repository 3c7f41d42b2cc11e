package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación del puerto StockBalanceRepository sobre PostgreSQL (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual sin bloqueo. Devuelve saldo cero si la fila no existe.
func (r *StockBalanceRepo) Get(productID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, location_id, on_hand_qty, reserved_qty, last_updated
		FROM stock_balances WHERE product_id = $1 AND location_id = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&b.ProductID, &b.LocationID, &b.OnHandQty, &b.ReservedQty, &b.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate crea la fila en cero si no existe y la bloquea (SELECT FOR
// UPDATE) por el resto de la transacción. Dos contabilizaciones sobre el
// mismo producto+ubicación se serializan aquí.
func (r *StockBalanceRepo) GetForUpdate(productID, locationID string) (*entity.StockBalance, error) {
	insert := `
		INSERT INTO stock_balances (product_id, location_id, on_hand_qty, reserved_qty, last_updated)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, locationID); err != nil {
		return nil, fmt.Errorf("ensure stock balance row: %w", err)
	}
	query := `
		SELECT product_id, location_id, on_hand_qty, reserved_qty, last_updated
		FROM stock_balances WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&b.ProductID, &b.LocationID, &b.OnHandQty, &b.ReservedQty, &b.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo (por producto y ubicación).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, location_id, on_hand_qty, reserved_qty, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET on_hand_qty = EXCLUDED.on_hand_qty, reserved_qty = EXCLUDED.reserved_qty, last_updated = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.LocationID, balance.OnHandQty, balance.ReservedQty,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}
