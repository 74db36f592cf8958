package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/pymes-api/docs"
	"github.com/jhoicas/pymes-api/internal/application/identity"
	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/internal/application/orders"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
	"github.com/jhoicas/pymes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pymes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pymes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pymes-api/internal/interfaces/http"
	"github.com/jhoicas/pymes-api/pkg/config"
	"github.com/jhoicas/pymes-api/pkg/jwt"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       PYMES API
// @version                     1.0
// @description                 Órdenes de venta con descuento de inventario transaccional.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner orders.TxRunner
		store    repository.Store
	)
	switch cfg.DB.Driver {
	case "memory":
		db := memory.New()
		adminID := db.SeedDemo()
		txRunner, store = db, db.Store()
		if tok, err := jwt.Generate(cfg.JWT.Secret, adminID, jwt.NewSessionID(), entity.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration); err == nil {
			log.Info().Str("token", tok).Msg("base en memoria con datos de ejemplo; token de administrador")
		} else {
			log.Warn().Err(err).Msg("no se pudo generar el token de ejemplo")
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log.Component("migrations")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner, store = postgres.NewTxRunner(pool), postgres.NewStore(pool)
	}

	taxRate := cfg.Orders.TaxRate
	orderQuery := orders.NewQuery(store.Orders)
	coordinator := orders.NewCoordinator(
		txRunner,
		orderQuery,
		identity.NewResolver(identity.Policy{AllowSalespersonBootstrap: cfg.Orders.AllowSalespersonBootstrap}),
		inventory.NewLedger(),
		orders.Config{TaxRate: &taxRate},
		log,
	)
	receiptUC := orders.NewReceiptUseCase(orderQuery, infrapdf.NewReceiptGenerator(cfg.App.Name))
	movementsUC := inventory.NewMovementsUseCase(store.Movements)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "PYMES API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orders:     coordinator,
		OrderQuery: orderQuery,
		Receipts:   receiptUC,
		Movements:  movementsUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
