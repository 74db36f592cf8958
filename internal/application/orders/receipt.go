package orders

import (
	"context"
	"fmt"
)

// ReceiptUseCase genera el comprobante PDF de una orden existente.
type ReceiptUseCase struct {
	query     *Query
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(query *Query, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, id int64) ([]byte, string, error) {
	detail, err := uc.query.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateOrderReceipt(ctx, detail)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("orden_%s.pdf", detail.Number), nil
}
