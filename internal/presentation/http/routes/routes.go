package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/config"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/internal/presentation/http/handler"
	"github.com/sangkips/storefront-pos/internal/presentation/http/middleware"
	"github.com/sangkips/storefront-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Menu     *handler.MenuHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Item     *handler.ItemHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
	User     *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
	v1.Use(rateLimiter.Middleware())
	{
		// Public routes; the till works before anyone signs in
		v1.POST("/auth/login", h.Auth.Login)
		registerTillRoutes(v1, h, deps)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h)

		// Admin routes
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		registerAdminRoutes(admin, h)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerTillRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	v1.GET("/menu", h.Menu.List)
	v1.GET("/categories", h.Menu.Categories)

	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/lines", h.Cart.AddLine)
		cart.PATCH("/lines/:item_id", h.Cart.ChangeQuantity)
		cart.PUT("/lines/:item_id/price", h.Cart.OverridePrice)
		cart.DELETE("/lines/:item_id", h.Cart.RemoveLine)
		cart.PUT("/draft", h.Cart.UpdateDraft)
	}

	// The coordinator rejects anonymous checkouts itself so the cart is
	// left untouched
	v1.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Checkout.Checkout)
	v1.GET("/checkout/last", h.Checkout.LastSale)

	v1.GET("/receipt", h.Printer.Receipt)
	v1.GET("/printer/status", h.Printer.GetStatus)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	protected.POST("/receipt/print", h.Printer.Print)
	protected.GET("/settings", h.Settings.GetSettings)

	reports := protected.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales.csv", h.Report.ExportCSV)
		reports.GET("/sales.xlsx", h.Report.ExportXLSX)
	}
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	admin.PUT("/settings", h.Settings.UpdateSettings)

	items := admin.Group("/admin/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}
	admin.POST("/admin/sync/pull", h.Item.PullFromCloud)

	users := admin.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
	}
}
