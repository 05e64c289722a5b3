package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankopalmi/gridmanager-api/internal/application/auth"
	"github.com/frankopalmi/gridmanager-api/internal/application/inventory"
	"github.com/frankopalmi/gridmanager-api/internal/application/purchases"
	"github.com/frankopalmi/gridmanager-api/internal/application/sales"
	"github.com/frankopalmi/gridmanager-api/internal/application/usecase"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *sales.SaleUseCase
	SalePDFUC   *sales.PDFUseCase
	PurchaseUC  *purchases.PurchaseUseCase
	InventoryUC *inventory.AdjustmentUseCase
	AccountUC   *usecase.AccountUseCase
	ReportUC    *usecase.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleDeposito)

	// Customers (mutación sólo admin)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Put("/:id", adminOnly, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Suppliers (mutación sólo admin)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Products (mutación sólo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Sales (mutación admin|vendedor)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SalePDFUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.Receipt)
	salesGroup.Post("/", salesRoles, saleHandler.Create)
	salesGroup.Patch("/:id/status", salesRoles, saleHandler.UpdateStatus)

	// Purchases (mutación admin|deposito)
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Post("/", warehouseRoles, purchaseHandler.Create)
	purchasesGroup.Patch("/:id/status", warehouseRoles, purchaseHandler.UpdateStatus)

	// Inventory (ajustes admin|deposito)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/adjustments", warehouseRoles, inventoryHandler.RegisterAdjustment)

	// Accounts (mutación sólo admin)
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id/movements", accountHandler.ListMovements)
	accounts.Post("/", adminOnly, accountHandler.Create)
	accounts.Post("/:id/movements", adminOnly, accountHandler.RegisterMovement)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
}
