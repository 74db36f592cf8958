package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/pymes-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// mapWriteError traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s: referencia inexistente", domain.ErrNotFound, op)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s: restricción de datos", domain.ErrConflict, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
