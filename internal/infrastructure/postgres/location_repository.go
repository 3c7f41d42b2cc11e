package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación de inventario.
func (r *LocationRepo) Create(location *entity.StockLocation) error {
	query := `INSERT INTO stock_locations (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, location.ID, location.Name, location.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	query := `SELECT id, name, created_at FROM stock_locations WHERE id = $1`
	var l entity.StockLocation
	err := r.q.QueryRow(context.Background(), query, id).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	return &l, nil
}

// GetByName obtiene una ubicación por nombre (único).
func (r *LocationRepo) GetByName(name string) (*entity.StockLocation, error) {
	query := `SELECT id, name, created_at FROM stock_locations WHERE name = $1`
	var l entity.StockLocation
	err := r.q.QueryRow(context.Background(), query, name).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location by name: %w", err)
	}
	return &l, nil
}

// List lista ubicaciones con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.StockLocation, error) {
	query := `SELECT id, name, created_at FROM stock_locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLocation
	for rows.Next() {
		var l entity.StockLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
