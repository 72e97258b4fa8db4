package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/million_tracker/internal/adapters/cache"
	"github.com/SscSPs/million_tracker/internal/adapters/csvfile"
	"github.com/SscSPs/million_tracker/internal/adapters/exchangerate"
	"github.com/SscSPs/million_tracker/internal/adapters/sheets"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/million_tracker/internal/core/services"
	"github.com/SscSPs/million_tracker/internal/handlers"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"github.com/SscSPs/million_tracker/internal/platform/config"
	"github.com/SscSPs/million_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/million_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Million Tracker API
// @version 1.0
// @description Personal wealth dashboard: ledger breakdowns, USD evolution and progress to the goal.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	repos := portsrepo.RepositoryProvider{}

	// Rate history is optional; without a database the dashboard still works.
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.RateHistory = pgsql.NewRateHistoryRepository(dbPool)
	} else {
		logger.Info("PGSQL_URL not set, rate history disabled")
	}

	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		repos.RateStore = cache.NewRedisStore(client, cache.DefaultRedisKey)
		logger.Info("Caching exchange rates in Redis", slog.String("addr", cfg.RedisAddr))
	} else {
		repos.RateStore = cache.NewMemoryStore()
	}

	switch cfg.LedgerSource {
	case config.LedgerSourceCSV:
		repos.Ledger = cache.NewLedgerCache(csvfile.NewLedgerSource(cfg.LedgerCSVPath), cfg.LedgerCacheTTL)
	default:
		source, err := sheets.NewLedgerSource(ctx, cfg.GoogleCredentialsFile, cfg.SpreadsheetID, cfg.WorksheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.Ledger = cache.NewLedgerCache(source, cfg.LedgerCacheTTL)
	}
	repos.RateSource = exchangerate.NewClient(cfg.RatesAPIURL, cfg.RatesHTTPTimeout)

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("ledger_source", cfg.LedgerSource),
		slog.String("valuation_source", string(cfg.ValuationSource)))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
