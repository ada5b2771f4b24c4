package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/fxops/currency_management_app/internal/adapters/database/pgsql"
	"github.com/fxops/currency_management_app/internal/adapters/exchangeapi"
	portssvc "github.com/fxops/currency_management_app/internal/core/ports/services"
	"github.com/fxops/currency_management_app/internal/core/services"
	"github.com/fxops/currency_management_app/internal/handlers"
	"github.com/fxops/currency_management_app/internal/metrics"
	"github.com/fxops/currency_management_app/internal/middleware"
	"github.com/fxops/currency_management_app/internal/platform/cache"
	"github.com/fxops/currency_management_app/internal/platform/config"
	"github.com/fxops/currency_management_app/internal/platform/pacer"
	"github.com/fxops/currency_management_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Currency Management API
// @version 1.0
// @description APIs for currency exchange rate queries, conversions, bulk conversions with CSV file and history management

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	serviceMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Rate cache with its scheduled daily flush
	rateCache, err := cache.NewRateCache(cfg.RateCacheSize, cfg.RateCacheTTL, logger, serviceMetrics)
	if err != nil {
		logger.Error("Failed to initialize rate cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := rateCache.Start(); err != nil {
		logger.Error("Failed to schedule rate cache flush", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rateCache.Stop()

	quoteProvider := exchangeapi.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeAPIKey, logger, serviceMetrics)
	conversionRepo := pgsql.NewConversionRepository(dbPool)
	bulkPacer := pacer.New(cfg.BulkPacingInterval)

	serviceContainer := &portssvc.ServiceContainer{
		Conversion: services.NewConversionService(quoteProvider, rateCache, conversionRepo, serviceMetrics),
		Bulk:       services.NewBulkConversionService(quoteProvider, conversionRepo, bulkPacer, logger, serviceMetrics),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to parse RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
