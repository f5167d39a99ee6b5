package app

import (
	"context"
	"errors"
	"fmt"

	"sparkify/internal/config"
	"sparkify/internal/etl"
	"sparkify/internal/infrastructure/health"
	"sparkify/internal/infrastructure/metrics"
	"sparkify/internal/model"

	"go.uber.org/zap"
)

// Database операции над схемой, нужные приложению
type Database interface {
	CreateTables(ctx context.Context) error
	ResetTables(ctx context.Context) error
	Counts(ctx context.Context) (model.RowCounts, error)
	Close() error
}

// App связывает хранилище, загрузчик и метрики одного запуска
type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      Database
	metrics *metrics.Metrics
	loader  *etl.Loader
}

// New создает приложение через фабрику компонентов
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	return NewComponentFactory(cfg, logger).CreateApp(ctx)
}

// LoadResult итог команды load
type LoadResult struct {
	Summaries []*etl.Summary
	Counts    model.RowCounts
}

// Failed возвращает число файлов, пропущенных из-за ошибок
func (r *LoadResult) Failed() int {
	n := 0
	for _, s := range r.Summaries {
		n += len(s.Failed)
	}
	return n
}

// Load загружает каталоги песен и журналов. Метрики сохраняются даже при ошибке загрузки.
func (a *App) Load(ctx context.Context) (*LoadResult, error) {
	summaries, loadErr := a.loader.Run(ctx)
	result := &LoadResult{Summaries: summaries}

	if err := a.exportMetrics(); err != nil {
		a.logger.Warn("Failed to export metrics", zap.Error(err))
	}

	if loadErr != nil {
		return result, fmt.Errorf("load failed: %w", loadErr)
	}

	counts, err := a.db.Counts(ctx)
	if err != nil {
		return result, err
	}
	result.Counts = counts

	a.logger.Info("Load finished",
		zap.Int64("songs", counts.Songs),
		zap.Int64("artists", counts.Artists),
		zap.Int64("users", counts.Users),
		zap.Int64("time", counts.Times),
		zap.Int64("songplays", counts.SongPlays),
		zap.Int("failed_files", result.Failed()))
	return result, nil
}

// CreateTables создает отсутствующие таблицы
func (a *App) CreateTables(ctx context.Context) error {
	return a.db.CreateTables(ctx)
}

// Reset удаляет и заново создает все таблицы
func (a *App) Reset(ctx context.Context) error {
	return a.db.ResetTables(ctx)
}

// Close закрывает подключение к базе данных
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (a *App) exportMetrics() error {
	if a.config.MetricsTextfile == "" {
		return nil
	}
	return a.metrics.WriteTextfile(a.config.MetricsTextfile)
}

// IsMalformed проверяет, что загрузка прервана некорректным входным файлом
func IsMalformed(err error) bool {
	var fe *etl.FileError
	return errors.As(err, &fe) && etl.IsMalformed(fe.Err)
}

// Check проверяет готовность хранилища и каталогов данных без создания загрузчика.
// Ошибка подключения не прерывает проверку и попадает в статус компонента database.
func Check(ctx context.Context, cfg *config.Config, logger *zap.Logger) health.Status {
	factory := NewComponentFactory(cfg, logger)

	var db health.Pinger
	conn, err := factory.CreateDatabase(ctx)
	if err != nil {
		db = unreachable{err: err}
	} else {
		defer func() {
			if err := conn.Close(); err != nil {
				logger.Warn("Failed to close database connection", zap.Error(err))
			}
		}()
		db = conn
	}

	return factory.CreateHealthChecker(db).Check(ctx)
}

// unreachable хранилище, к которому не удалось подключиться
type unreachable struct {
	err error
}

func (u unreachable) PingContext(context.Context) error {
	return u.err
}
