// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"fmt"

	"sparkify/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// TimeRepository реализует вставку записей таблицы time
type TimeRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

// NewTimeRepository создает новый репозиторий записей времени
func NewTimeRepository(db bun.IDB, logger *zap.Logger) *TimeRepository {
	return &TimeRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIgnore вставляет записи времени; повторяющиеся start_time игнорируются,
// в том числе внутри одного пакета
func (r *TimeRepository) InsertIgnore(ctx context.Context, entries []model.TimeEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	res, err := r.insertQuery(entries).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert time entries: %w", err)
	}

	return rowsAffected(res), nil
}

// insertQuery строит INSERT пропуская существующие start_time
func (r *TimeRepository) insertQuery(entries []model.TimeEntry) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(&entries).
		On("CONFLICT (start_time) DO NOTHING")
}
