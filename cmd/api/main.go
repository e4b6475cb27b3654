package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/application/service"
	"github.com/sangkips/storefront-pos/internal/config"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/database"
	"github.com/sangkips/storefront-pos/internal/infrastructure/replication"
	"github.com/sangkips/storefront-pos/internal/infrastructure/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/store"
	"github.com/sangkips/storefront-pos/internal/presentation/http/handler"
	"github.com/sangkips/storefront-pos/internal/presentation/http/routes"
	"github.com/sangkips/storefront-pos/pkg/printer"
	"github.com/sangkips/storefront-pos/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	loc := cfg.App.Location()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedAdminUser(db, &cfg.Seed); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// Persisted store
	var kv domainRepo.KeyValueStore
	switch cfg.Store.Driver {
	case "memory":
		log.Println("Using in-memory store; nothing survives a restart")
		kv = store.NewMemoryStore()
	default:
		kv = store.NewGormStore(db)
	}
	if seeded, err := store.Seed(ctx, kv, cfg.Seed.Catalog); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	} else if seeded {
		log.Println("Store seeded with the sample catalog")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	catalogRepo := repository.NewCatalogRepository(kv)
	cartRepo := repository.NewCartRepository(kv)
	draftRepo := repository.NewDraftRepository(kv)
	saleRepo := repository.NewSaleRepository(kv)
	settingsRepo := repository.NewSettingsRepository(kv)
	committer := repository.NewCheckoutCommitter(kv)

	// Replication targets
	webhook := replication.NewWebhookSink(cfg.Webhook.URL, cfg.Webhook.Timeout)
	log.Printf("Sale webhook: %s", webhook)

	var cloud domainRepo.DocumentStore = replication.NewNullDocumentStore()
	if cfg.Firestore.Enabled {
		fs, err := replication.NewFirestoreStore(ctx, &cfg.Firestore)
		if err != nil {
			log.Printf("Warning: Firestore unavailable, cloud sync disabled: %v", err)
		} else {
			defer fs.Close()
			cloud = fs
			log.Printf("Cloud sync: firestore project %s", cfg.Firestore.ProjectID)
		}
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(printer.Options{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	register := service.NewRegister()
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	cartService := service.NewCartService(register, cartRepo, draftRepo, catalogRepo)
	checkoutService := service.NewCheckoutService(register, cartRepo, draftRepo, catalogRepo, committer, webhook, cloud, loc)
	catalogService := service.NewCatalogService(register, catalogRepo, settingsRepo, cloud)
	settingsService := service.NewSettingsService(register, settingsRepo, cloud)
	reportService := service.NewReportService(saleRepo, loc)
	printerService := service.NewPrinterService(
		thermalPrinter, checkoutService, cartRepo, draftRepo, settingsRepo,
		entity.ReceiptHeader{
			StoreName: cfg.Printer.StoreName,
			Address:   cfg.Printer.Address1,
			Phone:     cfg.Printer.Phone,
		},
		cfg.Printer.Width, loc,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Menu:     handler.NewMenuHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Item:     handler.NewItemHandler(catalogService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
		User:     handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}

	// Let in-flight sale replication finish before exiting
	if err := checkoutService.WaitContext(shutdownCtx); err != nil {
		log.Printf("Warning: abandoning replication of %d sale(s): %v", checkoutService.Pending(), err)
	}
	log.Println("Server stopped")
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: failed to purge idempotency keys: %v", err)
			}
		}
	}
}
