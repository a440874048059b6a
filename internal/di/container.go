package di

import (
	"github.com/BiblioGo/LibraryApp/internal/adapter/storage/minio"
	"github.com/BiblioGo/LibraryApp/internal/app"
	"github.com/BiblioGo/LibraryApp/internal/config"
	"github.com/BiblioGo/LibraryApp/internal/database/client"
	"github.com/BiblioGo/LibraryApp/internal/database/postgres"
	"github.com/BiblioGo/LibraryApp/internal/database/storage"
	"github.com/BiblioGo/LibraryApp/internal/logger"
	"github.com/BiblioGo/LibraryApp/internal/rabbitmq"
	"github.com/BiblioGo/LibraryApp/internal/usecase"
)

// BuildApp wires all dependencies and returns the ready application.
func BuildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Raw pool: runs migrations, backs the sqlx storages.
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// ORM connection for the entity storages.
	gormDB, err := postgres.NewGormDB(cfg)
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(gormDB, slogger)
	bookStorage := postgres.NewBookStorage(gormDB, slogger)
	loanStorage := postgres.NewLoanStorage(gormDB, slogger)
	reportStorage := storage.NewReportStorage(dbClient.DB, slogger)
	auditStorage := storage.NewAuditStorage(dbClient.DB, slogger)

	fileStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	userUseCase := usecase.NewUserUseCase(userStorage, loanStorage, slogger)
	bookUseCase := usecase.NewBookUseCase(bookStorage, fileStorage, slogger)
	loanUseCase := usecase.NewLoanUseCase(loanStorage, userStorage, bookStorage, reportStorage, auditStorage, slogger)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		gormDB,
		userUseCase,
		bookUseCase,
		loanUseCase,
		rabbitMQClient,
		rabbitMQClient,
		auditStorage,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
