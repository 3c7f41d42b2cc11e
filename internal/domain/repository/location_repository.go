package repository

import "github.com/tu-usuario/retail-ledger-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para StockLocation.
type LocationRepository interface {
	Create(location *entity.StockLocation) error
	GetByID(id string) (*entity.StockLocation, error)
	GetByName(name string) (*entity.StockLocation, error)
	List(limit, offset int) ([]*entity.StockLocation, error)
}
