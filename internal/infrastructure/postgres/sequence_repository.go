package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo asigna consecutivos usando secuencias nativas de PostgreSQL.
// nextval es monotónico y no bloquea entre transacciones; un rollback deja
// hueco en la numeración, lo cual es aceptado.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de secuencias. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente consecutivo de la secuencia indicada.
func (r *SequenceRepo) Next(name string) (int64, error) {
	var next int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval($1)`, name).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sequence value %s: %w", name, err)
	}
	return next, nil
}
