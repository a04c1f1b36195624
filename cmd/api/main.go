package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finboard/finboard/internal/budget"
	budgetStore "github.com/finboard/finboard/internal/budget/store"
	"github.com/finboard/finboard/internal/categorize"
	categorizeStore "github.com/finboard/finboard/internal/categorize/store"
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/database"
	"github.com/finboard/finboard/internal/export"
	"github.com/finboard/finboard/internal/goal"
	goalStore "github.com/finboard/finboard/internal/goal/store"
	finboardHttp "github.com/finboard/finboard/internal/http"
	budgetHandler "github.com/finboard/finboard/internal/http/budget"
	categorizeHandler "github.com/finboard/finboard/internal/http/categorize"
	exportHandler "github.com/finboard/finboard/internal/http/export"
	goalHandler "github.com/finboard/finboard/internal/http/goal"
	"github.com/finboard/finboard/internal/http/health"
	importHandler "github.com/finboard/finboard/internal/http/importcsv"
	reportHandler "github.com/finboard/finboard/internal/http/report"
	txHandler "github.com/finboard/finboard/internal/http/transaction"
	"github.com/finboard/finboard/internal/importer"
	"github.com/finboard/finboard/internal/logging"
	"github.com/finboard/finboard/internal/memstore"
	"github.com/finboard/finboard/internal/report"
	"github.com/finboard/finboard/internal/transaction"
	txStore "github.com/finboard/finboard/internal/transaction/store"
)

const shutdownTimeout = 30 * time.Second

type repositories struct {
	transactions transaction.Repository
	budgets      budget.Repository
	goals        goal.Repository
	rules        categorize.Repository
	pinger       health.Pinger
	close        func() error
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	var (
		transactionService = transaction.NewService(repos.transactions)
		budgetService      = budget.NewService(repos.budgets)
		goalService        = goal.NewService(repos.goals)
		categorizeService  = categorize.NewService(repos.rules)
		reportService      = report.NewService(transactionService, budgetService)
		importService      = importer.NewService(transactionService, categorizeService)
		exportService      = export.NewService(transactionService)
	)

	router := finboardHttp.New(finboardHttp.Handlers{
		Transactions:  txHandler.NewHandler(transactionService),
		Import:        importHandler.NewHandler(importService),
		Export:        exportHandler.NewHandler(exportService),
		Budgets:       budgetHandler.NewHandler(budgetService, reportService),
		Goals:         goalHandler.NewHandler(goalService),
		Reports:       reportHandler.NewHandler(reportService, time.Now),
		CategoryRules: categorizeHandler.NewHandler(categorizeService),
		Health:        health.NewHandler(repos.pinger),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "backend", cfg.Store.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	slog.Info("server stopped")

	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Store.Backend == config.BackendMemory {
		store := memstore.New()

		return &repositories{
			transactions: store,
			budgets:      store,
			goals:        store,
			rules:        store,
			pinger:       store,
			close:        func() error { return nil },
		}, nil
	}

	connStr := cfg.ConnectionString()

	if cfg.Store.MigrateOnStart {
		if err := database.Migrate(connStr); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := database.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &repositories{
		transactions: txStore.New(db),
		budgets:      budgetStore.New(db),
		goals:        goalStore.New(db),
		rules:        categorizeStore.New(db),
		pinger:       db,
		close:        db.Close,
	}, nil
}
