package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pymes-api/internal/application/dto"
	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

// InventoryHandler expone la auditoría de movimientos de inventario (protegido).
type InventoryHandler struct {
	movements *inventory.MovementsUseCase
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementsUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{movements: movements, log: log}
}

// ListMovements godoc
// @Summary      Auditoría de movimientos de inventario
// @Description  Del más reciente al más antiguo. Filtro opcional por producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query     int  false  "ID del producto"
// @Param        limit        query     int  false  "Máximo de filas (por defecto 50, máximo 500)"
// @Param        offset       query     int  false  "Desplazamiento"
// @Success      200          {array}   dto.MovementResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var itemID *int64
	if raw := c.Query("producto_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id inválido"})
		}
		itemID = &id
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	list, err := h.movements.List(c.UserContext(), itemID, dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}
