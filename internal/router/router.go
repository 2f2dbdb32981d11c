package router

import (
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/config"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/handler"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/license"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/middleware"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/service"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	gate := license.NewGate()
	cache := service.NewListCache(rdb)

	authSvc := service.NewAuthService(userRepo, gate, cfg)
	productSvc := service.NewProductService(productRepo, movementRepo, cache)
	customerSvc := service.NewCustomerService(customerRepo, cache)
	supplierSvc := service.NewSupplierService(supplierRepo, cache)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, movementRepo, cache)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, movementRepo, cache)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo)
	reportSvc := service.NewReportService(productRepo, saleRepo, purchaseRepo, movementRepo, snapshotRepo)
	searchSvc := service.NewSearchService(productRepo, customerRepo, supplierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc, dispatcher)
	searchH := handler.NewSearchHandler(searchSvc)
	usersH := handler.NewUsersHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/signup", middleware.LoginRateLimiter(), authH.Signup)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — one capability per endpoint, resolved against the
	// role×capability matrix (demo tiers enforced in the same check).
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	require := func(capability string) gin.HandlerFunc {
		return middleware.RequireCapability(gate, capability)
	}
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/me", authH.Me)
		v1.PATCH("/me", authH.UpdateProfile)

		v1.GET("/products", require(license.CapViewProducts), productsH.List)
		v1.GET("/products/:id", require(license.CapViewProducts), productsH.GetByID)
		v1.POST("/products", require(license.CapManageProducts), productsH.Create)
		v1.PUT("/products/:id", require(license.CapManageProducts), productsH.Update)
		v1.DELETE("/products/:id", require(license.CapDeleteProducts), productsH.Delete)
		v1.PATCH("/products/:id/stock", require(license.CapAdjustStock), productsH.AdjustStock)

		v1.GET("/customers", require(license.CapViewCustomers), customersH.List)
		v1.GET("/customers/:id", require(license.CapViewCustomers), customersH.GetByID)
		v1.POST("/customers", require(license.CapManageCustomers), customersH.Create)
		v1.PUT("/customers/:id", require(license.CapManageCustomers), customersH.Update)
		v1.DELETE("/customers/:id", require(license.CapManageCustomers), customersH.Delete)

		v1.GET("/suppliers", require(license.CapViewSuppliers), suppliersH.List)
		v1.GET("/suppliers/:id", require(license.CapViewSuppliers), suppliersH.GetByID)
		v1.POST("/suppliers", require(license.CapManageSuppliers), suppliersH.Create)
		v1.PUT("/suppliers/:id", require(license.CapManageSuppliers), suppliersH.Update)
		v1.DELETE("/suppliers/:id", require(license.CapManageSuppliers), suppliersH.Delete)

		v1.GET("/sales", require(license.CapViewSales), salesH.List)
		v1.GET("/sales/:id", require(license.CapViewSales), salesH.GetByID)
		v1.POST("/sales", require(license.CapCreateSales), salesH.Create)

		v1.GET("/purchases", require(license.CapViewPurchases), purchasesH.List)
		v1.GET("/purchases/:id", require(license.CapViewPurchases), purchasesH.GetByID)
		v1.POST("/purchases", require(license.CapCreatePurchases), purchasesH.Create)

		v1.GET("/inventory/alerts", require(license.CapViewAlerts), inventoryH.LowStockAlerts)
		v1.GET("/inventory/movements", require(license.CapViewMovements), inventoryH.Movements)

		v1.GET("/reports", require(license.CapViewReports), reportsH.Generate)
		v1.GET("/reports/export/csv", require(license.CapExportReports), reportsH.ExportCSV)
		v1.GET("/reports/export/pdf", require(license.CapExportReports), reportsH.ExportPDF)
		v1.POST("/reports/export", require(license.CapExportReports), reportsH.ExportAsync)
		v1.GET("/dashboard/financial", require(license.CapViewDashboard), reportsH.FinancialSnapshot)

		v1.GET("/search", require(license.CapSearch), searchH.Search)

		users := v1.Group("/users", require(license.CapManageUsers))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
