package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/activity"
	activityRepo "github.com/mputra/treasury-management/internal/activity/postgres"
	"github.com/mputra/treasury-management/internal/auth"
	authRepo "github.com/mputra/treasury-management/internal/auth/postgres"
	"github.com/mputra/treasury-management/internal/core/events"
	"github.com/mputra/treasury-management/internal/expense"
	expenseRepo "github.com/mputra/treasury-management/internal/expense/postgres"
	"github.com/mputra/treasury-management/internal/income"
	incomeRepo "github.com/mputra/treasury-management/internal/income/postgres"
	"github.com/mputra/treasury-management/internal/kas"
	kasRepo "github.com/mputra/treasury-management/internal/kas/postgres"
	"github.com/mputra/treasury-management/internal/report"
	reportRepo "github.com/mputra/treasury-management/internal/report/postgres"
	"github.com/mputra/treasury-management/internal/transport/rest"
	"github.com/mputra/treasury-management/internal/transport/swagger"
	"github.com/mputra/treasury-management/internal/user"
	userRepo "github.com/mputra/treasury-management/internal/user/postgres"
	"github.com/mputra/treasury-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("openapi spec check failed: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx pool: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	// Repositories
	authRepository := authRepo.NewRepository(gormDB)
	userRepository := userRepo.NewUserRepository(gormDB)
	kasRepository := kasRepo.NewKasRepository(gormDB)
	incomeRepository := incomeRepo.NewIncomeRepository(gormDB)
	expenseRepository := expenseRepo.NewExpenseRepository(gormDB)
	activityRepository := activityRepo.NewActivityRepository(gormDB)
	reportRepository := reportRepo.NewReportRepository(gormDB)

	// Services
	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepository, tokenGenerator)
	userService := user.NewService(userRepository, config.Security.BCryptCost, lg)
	kasService := kas.NewService(kasRepository, eventBus, lg)
	incomeService := income.NewService(incomeRepository, eventBus, lg)
	expenseService := expense.NewService(expenseRepository, eventBus, lg)
	activityService := activity.NewService(activityRepository, lg)

	aggregator := report.NewAggregator(kasRepository, incomeRepository, expenseRepository)
	reportService := report.NewService(reportRepository, aggregator, eventBus, lg)

	// Saved reports keep their totals; the watcher only logs drift.
	watcher := report.NewStalenessWatcher(reportRepository, lg)
	watcher.Register(eventBus)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		User:     user.NewHandler(userService),
		Kas:      kas.NewHandler(kasService),
		Income:   income.NewHandler(incomeService),
		Expense:  expense.NewHandler(expenseService),
		Activity: activity.NewHandler(activityService),
		Report:   report.NewHandler(reportService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// initDB opens the shared pgx connection pool used by gorm, goose, and
// the health checker.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
