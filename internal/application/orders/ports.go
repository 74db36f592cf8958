package orders

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback y el error se devuelve sin modificar.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Store) error) error
}

// ReceiptGenerator genera el comprobante PDF de una orden.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.OrderDetail) ([]byte, error)
}
