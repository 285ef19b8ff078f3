package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calmseek-backend/config"
	deliveryHttp "calmseek-backend/internal/delivery/http"
	"calmseek-backend/internal/delivery/http/handler"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/infrastructure/cache"
	"calmseek-backend/internal/infrastructure/database"
	"calmseek-backend/internal/repository"
	"calmseek-backend/internal/service"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/jwt"
	"calmseek-backend/pkg/validator"

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
	ReminderService *service.ReminderService
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

	// Apply database migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, reminderService := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.ReminderService = reminderService

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.ReminderService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	roleRepo := repository.NewRoleRepository()
	providerDetailRepo := repository.NewProviderDetailRepository()
	clientDetailRepo := repository.NewClientDetailRepository()
	timeSlotRepo := repository.NewTimeSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	contactRepo := repository.NewContactRepository()
	directMessageRepo := repository.NewDirectMessageRepository()
	groupRepo := repository.NewGroupRepository()
	groupMessageRepo := repository.NewGroupMessageRepository()
	invitationRepo := repository.NewInvitationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	mailer := service.NewSMTPMailer(cfg.Mail, log)
	reminderService := service.NewReminderService(db, log, appointmentRepo, mailer)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, accountRepo, roleRepo, providerDetailRepo, clientDetailRepo, jwtService, redisClient, mailer, auditService, cfg.App.BaseURL)
	accountUsecase := usecase.NewAccountUsecase(db, log, accountRepo, providerDetailRepo, clientDetailRepo, auditService)
	providerUsecase := usecase.NewProviderUsecase(db, log, providerDetailRepo)
	timeSlotUsecase := usecase.NewTimeSlotUsecase(db, log, timeSlotRepo, appointmentRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, timeSlotRepo, auditService)
	contactUsecase := usecase.NewContactUsecase(db, log, contactRepo, directMessageRepo, accountRepo, auditService)
	groupUsecase := usecase.NewGroupUsecase(db, log, groupRepo, groupMessageRepo, invitationRepo, accountRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	accountHandler := handler.NewAccountHandler(accountUsecase, customValidator)
	providerHandler := handler.NewProviderHandler(providerUsecase)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	contactHandler := handler.NewContactHandler(contactUsecase, customValidator)
	groupHandler := handler.NewGroupHandler(groupUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		accountHandler,
		providerHandler,
		timeSlotHandler,
		appointmentHandler,
		contactHandler,
		groupHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, reminderService
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start the appointment reminder scheduler
	if err := app.ReminderService.Start(); err != nil {
		logrus.Fatalf("Failed to start reminder scheduler: %v", err)
	}

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

	// Stop the reminder scheduler and wait for a running pass
	app.ReminderService.Stop()

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
