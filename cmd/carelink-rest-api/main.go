// cmd/carelink-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/profyt7/carelinkai-sub005/internal/api/rest/v1"
	"github.com/profyt7/carelinkai-sub005/internal/app"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/connector"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/cryptography"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/metrics"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/ratelimit"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/realtime"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/scheduler"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db           *gorm.DB
	services     *app.Services
	hub          *realtime.Hub
	metrics      *metrics.Metrics
	limiter      ratelimit.Limiter
	closeLimiter func() error
	scheduler    *scheduler.Scheduler
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	ctx := context.Background()

	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	repos, err := persistence.NewRepositories(db, log)
	if err != nil {
		return nil, err
	}

	// Initialize connectors
	storage, err := connector.NewDocumentStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	mailer, err := connector.NewMailer(ctx, &cfg.Mail, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	// Initialize cryptographic processors
	cipher, err := cryptography.NewSecretCipher(log, cfg.Auth.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret cipher: %w", err)
	}

	deps := &appDependencies{
		db:      db,
		hub:     realtime.NewHub(log),
		metrics: metrics.New(),
	}

	deps.services, err = app.NewServices(repos, &app.Collaborators{
		Storage:   storage,
		Mailer:    mailer,
		Publisher: deps.hub,
		Cipher:    cipher,
		Hasher:    cryptography.NewPasswordHasher(bcrypt.DefaultCost),
		TOTP:      cryptography.NewTOTPProvider(cfg.Auth.Issuer),
		Shifts:    deps.metrics,
	}, &app.Settings{
		Auth:       &cfg.Auth,
		Storage:    &cfg.Storage,
		Audit:      &cfg.Audit,
		Compliance: &cfg.Compliance,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	deps.limiter, deps.closeLimiter = ratelimit.NewLimiter(ctx, &cfg.Redis, &cfg.RateLimit, log)

	// Schedule maintenance jobs
	deps.scheduler = scheduler.New(log, deps.metrics)
	if err := scheduler.RegisterMaintenanceJobs(deps.scheduler, deps.services.Audit, deps.services.Compliance,
		&cfg.Audit, &cfg.Compliance, log); err != nil {
		return nil, fmt.Errorf("failed to register scheduled jobs: %w", err)
	}

	return deps, nil
}

// close releases the realtime hub, the rate limiter backend and the database
func (d *appDependencies) close(log logger.Logger) {
	d.hub.Close()
	if err := d.closeLimiter(); err != nil {
		log.Warn("Failed to close rate limiter", "error", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database", "error", err)
	}
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	s := deps.services
	v1.SetupRoutes(r, &v1.Services{
		Auth:          s.Auth,
		Accounts:      s.Accounts,
		Users:         s.Users,
		TwoFactor:     s.TwoFactor,
		Profiles:      s.Profiles,
		Homes:         s.Homes,
		Assessments:   s.Assessments,
		Families:      s.Families,
		Documents:     s.Documents,
		Leads:         s.Leads,
		Messages:      s.Messages,
		Appointments:  s.Appointments,
		Shifts:        s.Shifts,
		Payments:      s.Payments,
		Compliance:    s.Compliance,
		Notifications: s.Notifications,
		Audit:         s.Audit,
		Dashboard:     s.Dashboard,
	}, &v1.Platform{
		Limiter:        deps.limiter,
		Observer:       deps.metrics,
		MetricsHandler: deps.metrics.Handler(),
		Database: v1.PingFunc(func(ctx context.Context) error {
			sqlDB, err := deps.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		Realtime: deps.hub,
		Logger:   log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	deps.scheduler.Start()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	var serveErr error
	select {
	case serveErr = <-serverErrors:
	case sig := <-quit:
		log.Info("Initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := deps.scheduler.Stop(ctx); err != nil {
		log.Warn("Scheduled jobs did not finish", "error", err)
	}
	if serveErr != nil {
		return serveErr
	}

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
