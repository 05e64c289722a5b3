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

	"github.com/frankopalmi/gridmanager-api/internal/application/auth"
	"github.com/frankopalmi/gridmanager-api/internal/application/inventory"
	"github.com/frankopalmi/gridmanager-api/internal/application/purchases"
	"github.com/frankopalmi/gridmanager-api/internal/application/sales"
	"github.com/frankopalmi/gridmanager-api/internal/application/usecase"
	infrapdf "github.com/frankopalmi/gridmanager-api/internal/infrastructure/pdf"
	"github.com/frankopalmi/gridmanager-api/internal/infrastructure/postgres"
	httpRouter "github.com/frankopalmi/gridmanager-api/internal/interfaces/http"
	"github.com/frankopalmi/gridmanager-api/pkg/config"
	"github.com/frankopalmi/gridmanager-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	accountMovRepo := postgres.NewAccountMovementRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, cfg.System)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, customerRepo, productRepo, auditRepo, cfg.System)
	purchaseUC := purchases.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo, productRepo, auditRepo, cfg.System)
	inventoryUC := inventory.NewAdjustmentUseCase(txRunner, productRepo, movementRepo)
	accountUC := usecase.NewAccountUseCase(txRunner, accountRepo, accountMovRepo)
	reportUC := usecase.NewReportUseCase(reportRepo)

	// PDF: comprobante de venta
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	salePDFUC := sales.NewPDFUseCase(saleRepo, tenantRepo, customerRepo, productRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Grid Manager API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		SalePDFUC:   salePDFUC,
		PurchaseUC:  purchaseUC,
		InventoryUC: inventoryUC,
		AccountUC:   accountUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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
