package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/BiblioGo/LibraryApp/internal/config"
	"github.com/BiblioGo/LibraryApp/internal/core/ports"
	"github.com/BiblioGo/LibraryApp/internal/database/client"
	"github.com/BiblioGo/LibraryApp/internal/usecase"
)

// App bundles the wired application. It runs either as the HTTP server or
// as the audit worker, selected by the -mode flag.
type App struct {
	Config *config.Config
	logger *slog.Logger

	dbClient *client.Client
	gormDB   *gorm.DB

	userUseCase usecase.UserUseCase
	bookUseCase usecase.BookUseCase
	loanUseCase usecase.LoanUseCase

	loanEventPublisher ports.LoanEventPublisher
	loanEventConsumer  ports.LoanEventConsumer
	auditStorage       ports.AuditStorage
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	gormDB *gorm.DB,
	userUseCase usecase.UserUseCase,
	bookUseCase usecase.BookUseCase,
	loanUseCase usecase.LoanUseCase,
	loanEventPublisher ports.LoanEventPublisher,
	loanEventConsumer ports.LoanEventConsumer,
	auditStorage ports.AuditStorage,
) *App {
	return &App{
		Config:             cfg,
		logger:             logger,
		dbClient:           dbClient,
		gormDB:             gormDB,
		userUseCase:        userUseCase,
		bookUseCase:        bookUseCase,
		loanUseCase:        loanUseCase,
		loanEventPublisher: loanEventPublisher,
		loanEventConsumer:  loanEventConsumer,
		auditStorage:       auditStorage,
	}
}

// LoggerIns exposes the application logger to main.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the selected mode and blocks until a termination signal.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", *mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown closes all application resources.
func (a *App) Shutdown() error {
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	if closer, ok := a.loanEventPublisher.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
