// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sparkify/internal/model"
	"sparkify/internal/storage/repository"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
)

// Убеждаемся, что Postgres реализует model.Store
var _ model.Store = (*Postgres)(nil)

// Options параметры подключения к PostgreSQL
type Options struct {
	DSN             string
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Postgres представляет подключение к PostgreSQL
type Postgres struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPostgres создает новое подключение к PostgreSQL.
// При ConnectAttempts > 1 подключение повторяется с паузой ConnectDelay.
func NewPostgres(ctx context.Context, opts Options, logger *zap.Logger) (*Postgres, error) {
	attempts := opts.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Info("Attempting to connect to database",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts))

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(opts.DSN)))

		// Загрузка однопоточная, большой пул не нужен
		sqldb.SetMaxOpenConns(8)
		sqldb.SetMaxIdleConns(4)
		sqldb.SetConnMaxLifetime(5 * time.Minute)

		db := bun.NewDB(sqldb, pgdialect.New())

		if logger.Core().Enabled(zap.DebugLevel) {
			db.AddQueryHook(bundebug.NewQueryHook(
				bundebug.WithVerbose(true),
				bundebug.FromEnv("BUNDEBUG"),
			))
		}

		pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
		lastErr = db.PingContext(pingCtx)
		pingCancel()

		if lastErr == nil {
			logger.Info("Connected to PostgreSQL database with Bun ORM", zap.Int("attempt", attempt))
			return NewPostgresFromDB(db, logger), nil
		}

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.ConnectDelay):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}

// NewPostgresFromDB оборачивает готовое подключение bun
func NewPostgresFromDB(db *bun.DB, logger *zap.Logger) *Postgres {
	return &Postgres{db: db, logger: logger}
}

// Close закрывает соединение с базой данных
func (p *Postgres) Close() error {
	return p.db.Close()
}

// GetDB возвращает подключение к базе данных
func (p *Postgres) GetDB() *bun.DB {
	return p.db
}

// RunInTx выполняет fn в транзакции. bun откатывает транзакцию при ошибке или панике.
func (p *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context, uow model.UnitOfWork) error) error {
	return p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, repository.NewRepositories(tx, p.logger))
	})
}

// Repositories возвращает репозитории вне транзакции
func (p *Postgres) Repositories() *repository.Repositories {
	return repository.NewRepositories(p.db, p.logger)
}

// PingContext проверяет соединение с базой данных
func (p *Postgres) PingContext(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
