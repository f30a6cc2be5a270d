package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarthealth/config"
	deliveryHttp "smarthealth/internal/delivery/http"
	"smarthealth/internal/delivery/http/handler"
	"smarthealth/internal/delivery/http/middleware"
	"smarthealth/internal/infrastructure/cache"
	"smarthealth/internal/infrastructure/database"
	"smarthealth/internal/repository"
	"smarthealth/internal/service"
	"smarthealth/internal/usecase"
	"smarthealth/pkg/jwt"
	"smarthealth/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config          *config.Config
	DB              *gorm.DB
	RedisClient     *redis.Client
	Server          *http.Server
	AutoGenerateSvc *service.AutoGenerateService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, autoGenerateSvc := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.AutoGenerateSvc = autoGenerateSvc

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.AutoGenerateService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	subProfileRepo := repository.NewSubProfileRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	agPreferenceRepo := repository.NewAGPreferenceRepository()
	slotInputRepo := repository.NewSlotInputRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	doctorLeaveRepo := repository.NewDoctorLeaveRepository()
	holidayRepo := repository.NewHolidayRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases and services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityRepo, agPreferenceRepo, slotInputRepo, holidayRepo, doctorLeaveRepo, doctorProfileRepo, cfg.Slots)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, availabilityRepo, patientProfileRepo, subProfileRepo, doctorProfileRepo)
	leaveUsecase := usecase.NewLeaveUsecase(db, log, doctorLeaveRepo, holidayRepo, availabilityRepo, appointmentRepo, doctorProfileRepo, cfg.Slots)
	holidayUsecase := usecase.NewHolidayUsecase(db, log, holidayRepo)
	autoGenerateSvc := service.NewAutoGenerateService(db, log, agPreferenceRepo, availabilityUsecase, cfg.Slots)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, auditService, customValidator, jwtService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, auditService, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, auditService, customValidator)
	leaveHandler := handler.NewLeaveHandler(leaveUsecase, auditService, customValidator)
	adminHandler := handler.NewAdminHandler(holidayUsecase, leaveUsecase, auditService, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, availabilityHandler, appointmentHandler, leaveHandler, adminHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, autoGenerateSvc
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start the background slot generator
	app.AutoGenerateSvc.Start()

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

	// Stop background workers first so no generation runs mid-shutdown
	app.AutoGenerateSvc.Stop()

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

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
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
