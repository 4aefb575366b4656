package router

import (
	"time"

	"optiops/internal/config"
	"optiops/internal/handler"
	"optiops/internal/infra"
	"optiops/internal/middleware"
	"optiops/internal/model"
	"optiops/internal/repository"
	"optiops/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	paymentClient := infra.NewPaymentClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	machineLogRepo := repository.NewMachineLogRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerOrderRepo := repository.NewCustomerOrderRepository(db)
	productionOrderRepo := repository.NewProductionOrderRepository(db)
	cartStore := repository.NewCartStore(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, customerOrderRepo, productionOrderRepo)
	machineSvc := service.NewMachineService(machineRepo, machineLogRepo)
	dashboardSvc := service.NewDashboardService(userRepo, machineRepo, customerOrderRepo, productionOrderRepo)
	checkoutSvc := service.NewCheckoutService(cfg, cartStore, customerOrderRepo, productRepo, userRepo, paymentClient)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	machinesH := handler.NewMachinesHandler(machineSvc, rdb)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, userSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)

		// Dashboard — admin only
		dash := v1.Group("/dashboard", middleware.RequireRole(model.RoleAdmin))
		{
			dash.GET("/summary", dashboardH.Summary)
			dash.GET("/users", dashboardH.Users)
			dash.GET("/user-stats", dashboardH.UserStats)
		}

		// User directory — admin only
		users := v1.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.GET("/check-username", usersH.CheckUsername)
			users.GET("/check-email", usersH.CheckEmail)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
			users.POST("/:id/reset-password", usersH.ResetPassword)
		}

		// Machines — admins and workers
		machines := v1.Group("/machines", middleware.RequireRole(model.RoleAdmin, model.RoleWorker))
		{
			machines.GET("", machinesH.List)
			machines.GET("/stats", machinesH.Stats)
			machines.GET("/:id", machinesH.GetDetails)
			machines.POST("/:id/status", machinesH.UpdateStatus)
			machines.POST("/:id/issues", machinesH.LogIssue)
		}

		// Cart and checkout — any authenticated user
		cart := v1.Group("/cart")
		{
			cart.GET("", checkoutH.GetCart)
			cart.POST("", checkoutH.AddToCart)
			cart.DELETE("", checkoutH.ClearCart)
			cart.DELETE("/:productId", checkoutH.RemoveFromCart)
		}
		v1.POST("/checkout", checkoutH.CreateSession)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
