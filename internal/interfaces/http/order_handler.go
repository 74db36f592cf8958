package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pymes-api/internal/application/dto"
	"github.com/jhoicas/pymes-api/internal/application/orders"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

// OrderHandler maneja las peticiones HTTP de órdenes (protegido).
type OrderHandler struct {
	coord   *orders.Coordinator
	query   *orders.Query
	receipt *orders.ReceiptUseCase
	log     *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(coord *orders.Coordinator, query *orders.Query, receipt *orders.ReceiptUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{coord: coord, query: query, receipt: receipt, log: log}
}

// Create godoc
// @Summary      Crear orden
// @Description  Descuenta stock de cada línea y registra la orden en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "clienteId o clientePersonaId, vendedorId o vendedorPersonaId, monedaId opcional, detalles"
// @Success      201   {object}  dto.OrderCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.coord.CreateFromRequest(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrderSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.query.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(orders.ToSummaryResponses(list))
}

// GetByID godoc
// @Summary      Detalle de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := orderID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de orden inválido"})
	}
	detail, err := h.query.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(orders.ToDetailResponse(detail))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden
// @Description  Cancelado devuelve el stock de todas las líneas; una orden cancelada no cambia más de estado.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "ID de la orden"
// @Param        body  body      dto.UpdateOrderStatusRequest  true  "Pendiente | Preparando | Listo | Entregado | Cancelado"
// @Success      200   {object}  dto.OrderDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := orderID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de orden inválido"})
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "status debe ser Pendiente, Preparando, Listo, Entregado o Cancelado",
		})
	}
	detail, err := h.coord.UpdateStatus(c.UserContext(), id, status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(orders.ToDetailResponse(detail))
}

// DownloadPDF godoc
// @Summary      Comprobante PDF de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := orderID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de orden inválido"})
	}
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

func orderID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}
