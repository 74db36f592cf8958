package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/internal/application/orders"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orders     *orders.Coordinator
	OrderQuery *orders.Query
	Receipts   *orders.ReceiptUseCase
	Movements  *inventory.MovementsUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Orders
	orderGroup := api.Group("/orders", RequireRole(entity.RoleAdmin, entity.RoleSeller))
	orderHandler := NewOrderHandler(deps.Orders, deps.OrderQuery, deps.Receipts, log)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	orderGroup.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Inventory movements (auditoría)
	invGroup := api.Group("/inventory", RequireRole(entity.RoleAdmin))
	inventoryHandler := NewInventoryHandler(deps.Movements, log)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
}
