package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/lexserve/backoffice/internal/application/service"
	"github.com/lexserve/backoffice/internal/config"
	"github.com/lexserve/backoffice/internal/export"
	"github.com/lexserve/backoffice/internal/infrastructure/activitylog"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/repository"
	"github.com/lexserve/backoffice/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/lexserve/backoffice/internal/interfaces/http"
	"github.com/lexserve/backoffice/pkg/database"
	"github.com/lexserve/backoffice/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting legal services back office",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	serviceReqRepo := repository.NewServiceRequestRepository(db.DB, logger)
	individualRepo := repository.NewIndividualRequestRepository(db.DB, logger)
	aidRepo := repository.NewFinancialAidRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	salaryRepo := repository.NewSalaryRepository(db.DB, logger)
	lawyerRepo := repository.NewLawyerRepository(db.DB, logger)
	caseRepo := repository.NewCaseRepository(db.DB, logger)
	packageRepo := repository.NewPackageRepository(db.DB, logger)

	txManager := sqlite.NewDB(db.DB, logger)
	activityLog := activitylog.NewWriter(db.DB, logger)

	// Initialize services
	kvLogger := utils.NewKVLogger(logger)

	settlementService := service.NewSettlementService(
		serviceReqRepo,
		individualRepo,
		aidRepo,
		packageRepo,
		paymentRepo,
		lawyerRepo,
		txManager,
		activityLog,
		kvLogger,
		service.SettlementConfig{
			AidValidityDays: cfg.Settlement.AidValidityDays,
			FollowUpDays:    cfg.Settlement.FollowUpDays,
		},
	)

	compensationService := service.NewCompensationService(
		lawyerRepo,
		caseRepo,
		salaryRepo,
		activityLog,
		kvLogger,
		service.CompensationConfig{
			PerCaseRate:      cfg.Compensation.PerCaseRate,
			FallbackAllCases: cfg.Compensation.FallbackAllCases,
		},
	)

	reportService := service.NewReportService(
		serviceReqRepo,
		individualRepo,
		aidRepo,
		paymentRepo,
		kvLogger,
		service.ReportConfig{
			RecentPageSize: cfg.Report.RecentPageSize,
		},
	)

	ledgerExporter := export.NewLedgerExporter(logger)

	// Initialize HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		settlementService,
		compensationService,
		reportService,
		ledgerExporter,
		kvLogger,
	)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
