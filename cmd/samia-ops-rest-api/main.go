// cmd/samia-ops-rest-api/main.go
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

	v1 "github.com/nabilgpt/samia-tarot-ops/internal/api/rest/v1"
	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/connector"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/trail"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/breaker"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Fold a local .env into the environment first so that credentials never
	// live in the config file itself.
	_ = godotenv.Load()

	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-api.yaml"
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

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
}

type appServices struct {
	doctor     health.DoctorService
	migrations migrations.MigrationService
	drift      drift.DriftService
	audit      audit.AuditService
	seeds      seeds.SeedService
}

// initializeDependencies sets up all application components. The API never
// migrates application tables; schema changes belong to the CLI.
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Initialize repositories
	ledgerRepo, err := persistence.NewGormLedgerRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger repository: %w", err)
	}

	settingsRepo, err := persistence.NewGormSettingsRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings repository: %w", err)
	}

	schemaReader, err := persistence.NewGormSchemaReader(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema reader: %w", err)
	}

	statementExecutor, err := persistence.NewGormStatementExecutor(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create statement executor: %w", err)
	}

	// Initialize audit trail
	trailStore, err := trail.NewFileTrailStore(cfg.Audit.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create trail store: %w", err)
	}

	var mirrorRepo audit.MirrorRepository
	if cfg.Audit.MirrorToDB {
		mirrorRepo, err = persistence.NewGormAuditLogRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit log repository: %w", err)
		}
	}

	// Initialize probers
	probers := initializeProbers(cfg, log)

	// Initialize services
	services, err := initializeApplicationServices(cfg, ledgerRepo, settingsRepo, schemaReader, statementExecutor, trailStore, mirrorRepo, probers, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services: services,
	}, nil
}

// initializeProbers builds one prober per configured vendor. The database is
// always probed; vendors whose credentials are absent are skipped with a
// warning so one missing key cannot hide the health of everything else.
func initializeProbers(cfg *config.RestConfig, log logger.Logger) []health.Prober {
	probers := []health.Prober{
		persistence.NewDatabaseProber(cfg.Database, breaker.New(health.ProbePostgres)),
	}

	if err := cfg.BaaS.Validate(); err == nil {
		baasConnector, err := connector.NewBaaSAdminConnector(&cfg.BaaS, breaker.New(health.ProbeBaaSAuth), log)
		if err == nil {
			probers = append(probers, baasConnector)
		} else {
			log.Warn("Skipping BaaS probe: ", err)
		}
	} else {
		log.Warn("Skipping BaaS probe: ", err)
	}

	if err := cfg.Cloudflare.Validate(); err == nil {
		cloudflareConnector, err := connector.NewCloudflareConnector(&cfg.Cloudflare, breaker.New(health.ProbeCloudflare), log)
		if err == nil {
			probers = append(probers, cloudflareConnector)
		} else {
			log.Warn("Skipping Cloudflare probe: ", err)
		}
	} else {
		log.Warn("Skipping Cloudflare probe: ", err)
	}

	if err := cfg.SendGrid.Validate(); err == nil {
		sendGridConnector, err := connector.NewSendGridConnector(&cfg.SendGrid, breaker.New(health.ProbeSendGrid), log)
		if err == nil {
			probers = append(probers, sendGridConnector)
		} else {
			log.Warn("Skipping SendGrid probe: ", err)
		}
	} else {
		log.Warn("Skipping SendGrid probe: ", err)
	}

	return probers
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.RestConfig,
	ledgerRepo migrations.LedgerRepository,
	settingsRepo seeds.SettingsRepository,
	schemaReader drift.SchemaReader,
	statementExecutor sqlexec.StatementExecutor,
	trailStore audit.TrailStore,
	mirrorRepo audit.MirrorRepository,
	probers []health.Prober,
	log logger.Logger,
) (*appServices, error) {
	doctorService, err := app.NewDoctorService(log, probers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor service: %w", err)
	}

	scriptService, err := app.NewScriptExecutionService(statementExecutor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create script execution service: %w", err)
	}

	migrationService, err := app.NewMigrationService(ledgerRepo, scriptService, cfg.Paths.MigrationsDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration service: %w", err)
	}

	driftService, err := app.NewDriftService(schemaReader, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create drift service: %w", err)
	}

	auditService, err := app.NewAuditService(trailStore, mirrorRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	seedService, err := app.NewSeedService(settingsRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create seed service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		doctor:     doctorService,
		migrations: migrationService,
		drift:      driftService,
		audit:      auditService,
		seeds:      seedService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.doctor,
		deps.services.migrations,
		deps.services.drift,
		deps.services.audit,
		deps.services.seeds,
	)

	// Serve OpenAPI spec
	r.GET("/api/v1/ops/openapi.yaml", func(c *gin.Context) {
		c.File("./api/openapi/v1/samia-tarot-ops.yaml")
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
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
