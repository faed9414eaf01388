package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/config"
	deliveryHttp "salon-booking/internal/delivery/http"
	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/infrastructure/cache"
	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/infrastructure/marketplace"
	"salon-booking/internal/repository"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/jwt"
	"salon-booking/pkg/validator"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	OrderSync   *service.OrderStatusSync
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid booking timezone %q: %w", cfg.Booking.Timezone, err)
	}

	// Apply migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, orderSync := initializeServer(cfg, db, redisClient, location)
	app.Server = server
	app.OrderSync = orderSync

	if err := orderSync.Start(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, location *time.Location) (*http.Server, *service.OrderStatusSync) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	draftRepo := repository.NewDraftRepository(redisClient, log, cfg.Booking.DraftTTL)

	// Initialize marketplace client (vendor, order and account gateways)
	marketplaceClient := marketplace.NewClient(cfg.Marketplace, log)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	orderLedger := service.NewOrderLedger(db, log, orderRepo, auditService)
	resolver := service.NewAvailabilityResolver(cfg.Booking.SlotGranularity, location, service.SystemClock{}, log)
	pricing := service.NewPricingCalculator(cfg.Booking.DiscountRate, cfg.Booking.TaxRate)
	orderSync := service.NewOrderStatusSync(db, orderRepo, marketplaceClient, auditService, cfg.Marketplace.ServiceToken, cfg.Sync.Schedule, log)

	// Initialize usecases
	vendorUsecase := usecase.NewVendorUsecase(log, marketplaceClient)
	wizardUsecase := usecase.NewBookingWizardUsecase(log, draftRepo, marketplaceClient, resolver, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, draftRepo, marketplaceClient, resolver)
	checkoutUsecase := usecase.NewCheckoutUsecase(log, draftRepo, marketplaceClient, pricing, resolver, orderLedger, cfg.Booking.SubmitLockTTL)
	accountUsecase := usecase.NewAccountUsecase(log, marketplaceClient)
	orderUsecase := usecase.NewOrderUsecase(log, marketplaceClient, orderLedger)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	vendorHandler := handler.NewVendorHandler(vendorUsecase)
	bookingHandler := handler.NewBookingHandler(wizardUsecase, availabilityUsecase, checkoutUsecase, customValidator)
	accountHandler := handler.NewAccountHandler(accountUsecase, customValidator)
	orderHandler := handler.NewOrderHandler(orderUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(vendorHandler, bookingHandler, accountHandler, orderHandler, auditLogHandler, authMiddleware)
	httpRouter := router.Setup()

	// CORS wraps the router so preflight requests never reach route matching
	var httpHandler http.Handler = corsMiddleware.Handle(httpRouter)
	httpHandler = handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(cfg.App.Env == "development"))(httpHandler)
	httpHandler = handlers.CombinedLoggingHandler(log.Writer(), httpHandler)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}, orderSync
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background jobs and closes all connections
func (app *App) Close() {
	// Let a running sync finish before its connections go away
	if app.OrderSync != nil {
		app.OrderSync.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
