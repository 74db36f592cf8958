package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// TimeBucketRepository inserta filas de la dimensión tiempo.
type TimeBucketRepository interface {
	Create(ctx context.Context, b *entity.TimeBucket) error
}
