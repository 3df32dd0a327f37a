package router

import (
	"time"

	"github.com/pedroluizchagas/thv/internal/config"
	"github.com/pedroluizchagas/thv/internal/handler"
	"github.com/pedroluizchagas/thv/internal/infra"
	"github.com/pedroluizchagas/thv/internal/middleware"
	"github.com/pedroluizchagas/thv/internal/repository"
	"github.com/pedroluizchagas/thv/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// storage may be nil when object-storage credentials are not configured;
// photo upload and bucket setup then answer with a configuration error.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.ObjectStorage) *gin.Engine {
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
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	movementRepo := repository.NewMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cartStore := infra.NewRedisCartStore(rdb)
	catalogCache := infra.NewRedisCache(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	var uploader service.Uploader
	var bucketEnsurer service.BucketEnsurer
	if storage != nil {
		uploader = storage
		bucketEnsurer = storage
	}
	productSvc := service.NewProductService(productRepo, uploader)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	quoteSvc := service.NewQuoteService(quoteRepo, productRepo, cfg.CompanyName)
	cartSvc := service.NewCartService(cartStore, productRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, transactionRepo, cartStore)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, movementRepo, transactionRepo)
	stockSvc := service.NewStockService(productRepo, movementRepo)
	financeSvc := service.NewFinanceService(transactionRepo)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo, catalogCache)
	dashboardSvc := service.NewDashboardService(productRepo, quoteRepo, saleRepo, transactionRepo)
	setupSvc := service.NewSetupService(userRepo, bucketEnsurer, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc, stockSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	quotesH := handler.NewQuotesHandler(quoteSvc)
	posH := handler.NewPOSHandler(cartSvc, saleSvc)
	salesH := handler.NewSalesHandler(saleSvc, cfg.CompanyName)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	stockH := handler.NewStockHandler(stockSvc)
	financeH := handler.NewFinanceHandler(financeSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	setupH := handler.NewSetupHandler(setupSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public catalog and quote intake — the marketing site talks to these
	r.GET("/v1/catalog/products", catalogH.Products)
	r.GET("/v1/catalog/categories", catalogH.Categories)
	r.POST("/v1/quotes", quotesH.Submit)

	// One-time bootstrap — idempotent, safe to leave exposed
	setup := r.Group("/v1/setup")
	{
		setup.POST("/admin", setupH.Admin)
		setup.POST("/bucket", setupH.Bucket)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole("admin", "user")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/dashboard", staff, dashboardH.Summary)

		// PDV — cart and checkout
		pos := v1.Group("/pos", staff)
		{
			pos.GET("/cart", posH.GetCart)
			pos.POST("/cart/items", posH.AddItem)
			pos.PATCH("/cart/items", posH.ChangeItem)
			pos.DELETE("/cart/items/:productId", posH.RemoveItem)
			pos.DELETE("/cart", posH.ClearCart)
			pos.POST("/checkout", posH.Checkout)
		}

		// Sales history
		v1.GET("/sales", staff, salesH.List)
		v1.GET("/sales/:id", staff, salesH.Get)
		v1.GET("/sales/:id/receipt", staff, salesH.Receipt)
		v1.DELETE("/sales/:id", adminOnly, salesH.Cancel)

		// Products — all staff read and adjust stock, admin writes
		v1.GET("/products", staff, productsH.List)
		v1.GET("/products/:id", staff, productsH.Get)
		v1.POST("/products/:id/stock", staff, productsH.AdjustStock)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.POST("/:id/photos/:slot", productsH.UploadPhoto)
		}

		v1.GET("/stock/movements", staff, stockH.Movements)

		// Categories — staff read, admin write
		v1.GET("/categories", staff, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		customers := v1.Group("/customers", staff)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		suppliers := v1.Group("/suppliers", staff)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		// Purchases
		v1.POST("/purchases", staff, purchasesH.Create)
		v1.GET("/purchases", staff, purchasesH.List)
		v1.GET("/purchases/:id", staff, purchasesH.Get)

		// Finance
		v1.GET("/transactions", staff, financeH.List)
		v1.GET("/transactions/categories", staff, financeH.Categories)
		v1.POST("/transactions", staff, financeH.Create)
		v1.DELETE("/transactions/:id", staff, financeH.Delete)

		// Quote triage
		v1.GET("/quotes", staff, quotesH.List)
		v1.GET("/quotes/:id", staff, quotesH.Get)
		v1.PATCH("/quotes/:id", staff, quotesH.Triage)
		v1.DELETE("/quotes/:id", adminOnly, quotesH.Delete)

		// User management — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
