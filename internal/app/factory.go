// Package app содержит фабрику компонентов приложения.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"sparkify/internal/config"
	"sparkify/internal/etl"
	"sparkify/internal/infrastructure/health"
	"sparkify/internal/infrastructure/metrics"
	"sparkify/internal/model"
	"sparkify/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if logger == nil {
		panic("Logger cannot be nil")
	}
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}
}

// CreateDatabase создает подключение к базе данных
func (f *ComponentFactory) CreateDatabase(ctx context.Context) (*storage.Postgres, error) {
	db, err := storage.NewPostgres(ctx, storage.Options{
		DSN:             f.config.DatabaseURL(),
		ConnectAttempts: f.config.Database.ConnectAttempts,
		ConnectDelay:    f.config.Database.ConnectDelay,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	f.logger.Info("Database connection created successfully")
	return db, nil
}

// CreateMetrics создает метрики загрузки
func (f *ComponentFactory) CreateMetrics() *metrics.Metrics {
	return metrics.NewMetrics(f.logger)
}

// CreateLoader создает загрузчик поверх хранилища
func (f *ComponentFactory) CreateLoader(store model.Store, m metrics.Interface) (*etl.Loader, error) {
	loc, err := f.config.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	loader := etl.NewLoader(store, etl.Options{
		SongDataDir:     f.config.SongDataDir,
		LogDataDir:      f.config.LogDataDir,
		Location:        loc,
		ContinueOnError: f.config.ContinueOnError,
		SongWorkers:     f.config.SongWorkers,
	}, m, f.logger)

	f.logger.Info("Loader created",
		zap.String("song_data", f.config.SongDataDir),
		zap.String("log_data", f.config.LogDataDir),
		zap.String("timezone", loc.String()),
		zap.Bool("continue_on_error", f.config.ContinueOnError),
		zap.Int("song_workers", f.config.SongWorkers))
	return loader, nil
}

// CreateHealthChecker создает проверку готовности
func (f *ComponentFactory) CreateHealthChecker(db health.Pinger) *health.Checker {
	return health.NewChecker(db, map[string]string{
		"song_data": f.config.SongDataDir,
		"log_data":  f.config.LogDataDir,
	}, 5*time.Second, f.logger)
}

// CreateAppDataDirectory создает директорию данных приложения
func (f *ComponentFactory) CreateAppDataDirectory() error {
	dataDir := f.config.AppDataDir
	if dataDir == "" {
		return nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		f.logger.Error("Failed to create app data directory", zap.String("dir", dataDir), zap.Error(err))
		return fmt.Errorf("failed to create app data directory: %w", err)
	}
	f.logger.Info("App data directory ready", zap.String("dir", dataDir))
	return nil
}

// CreateApp создает приложение со всеми зависимостями
func (f *ComponentFactory) CreateApp(ctx context.Context) (*App, error) {
	if err := f.CreateAppDataDirectory(); err != nil {
		return nil, err
	}

	db, err := f.CreateDatabase(ctx)
	if err != nil {
		return nil, err
	}

	m := f.CreateMetrics()

	loader, err := f.CreateLoader(db, m)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			f.logger.Warn("Failed to close database connection", zap.Error(cerr))
		}
		return nil, err
	}

	return &App{
		config:  f.config,
		logger:  f.logger,
		db:      db,
		metrics: m,
		loader:  loader,
	}, nil
}
