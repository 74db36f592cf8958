package orders

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/application/dto"
	"github.com/jhoicas/pymes-api/internal/application/identity"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// CreateFromRequest adapta el body de POST /api/orders a Create.
func (c *Coordinator) CreateFromRequest(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderCreatedResponse, error) {
	input, err := CreateInputFromRequest(in)
	if err != nil {
		return nil, err
	}
	order, err := c.Create(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	return &dto.OrderCreatedResponse{ID: order.ID, Number: order.Number, Message: "Orden creada exitosamente"}, nil
}

// CreateInputFromRequest traduce los campos opcionales del request a referencias explícitas.
func CreateInputFromRequest(in dto.CreateOrderRequest) (CreateInput, error) {
	customer, err := identity.RefFrom(in.ClienteID, in.ClientePersonaID)
	if err != nil {
		return CreateInput{}, err
	}
	seller, err := identity.RefFrom(in.VendedorID, in.VendedorPersonaID)
	if err != nil {
		return CreateInput{}, err
	}
	lines := make([]LineInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		lines = append(lines, LineInput{ItemID: d.ProductoID, Quantity: d.Cantidad, UnitPrice: d.Precio})
	}
	return CreateInput{
		Customer:    customer,
		Salesperson: seller,
		CurrencyID:  in.MonedaID,
		Lines:       lines,
	}, nil
}

// ToSummaryResponse convierte una fila de listado.
func ToSummaryResponse(s *entity.OrderSummary) dto.OrderSummaryResponse {
	return dto.OrderSummaryResponse{
		ID:           s.ID,
		Number:       s.Number,
		CustomerID:   s.CustomerPersonID,
		CustomerName: s.CustomerName,
		Status:       s.Status.String(),
		Total:        s.Total,
		CreatedAt:    s.CreatedAt,
	}
}

// ToSummaryResponses convierte el listado completo (lista vacía, nunca nil).
func ToSummaryResponses(list []*entity.OrderSummary) []dto.OrderSummaryResponse {
	out := make([]dto.OrderSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSummaryResponse(s))
	}
	return out
}

// ToDetailResponse convierte la orden con sus líneas.
func ToDetailResponse(d *entity.OrderDetail) *dto.OrderDetailResponse {
	resp := &dto.OrderDetailResponse{
		OrderSummaryResponse: ToSummaryResponse(&d.OrderSummary),
		Subtotal:             d.Subtotal,
		Tax:                  d.Tax,
		Lines:                make([]dto.OrderLineResponse, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductoID: l.ItemID,
			Producto:   l.ItemName,
			Cantidad:   l.Quantity,
			Precio:     l.UnitPrice,
			TotalLinea: l.LineTotal,
		})
	}
	return resp
}
