package postgres

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.TimeBucketRepository = (*TimeBucketRepo)(nil)

// TimeBucketRepo inserta en la dimensión tiempo.
type TimeBucketRepo struct {
	q Querier
}

// NewTimeBucketRepository construye el repositorio. Pasar pool o tx (Querier).
func NewTimeBucketRepository(q Querier) *TimeBucketRepo {
	return &TimeBucketRepo{q: q}
}

// Create inserta la fila y asigna b.ID.
func (r *TimeBucketRepo) Create(ctx context.Context, b *entity.TimeBucket) error {
	query := `INSERT INTO tiempo (fecha, anio, mes, dia) VALUES ($1, $2, $3, $4) RETURNING pk_tiempo`
	if err := r.q.QueryRow(ctx, query, b.Date, b.Year, b.Month, b.Day).Scan(&b.ID); err != nil {
		return mapWriteError("create tiempo", err)
	}
	return nil
}
