package storage

import (
	"context"
	"fmt"

	"sparkify/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// tableModels порядок создания таблиц; удаление идет в обратном порядке
var tableModels = []interface{}{
	(*model.Artist)(nil),
	(*model.Song)(nil),
	(*model.User)(nil),
	(*model.TimeEntry)(nil),
	(*model.SongPlay)(nil),
}

// CreateTables создает все таблицы, если их еще нет
func (p *Postgres) CreateTables(ctx context.Context) error {
	for _, m := range tableModels {
		if _, err := p.createTableQuery(m).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}

	p.logger.Info("Tables created", zap.Int("count", len(tableModels)))
	return nil
}

// createTableQuery строит CREATE TABLE для модели; ограничения unique берутся из тегов bun
func (p *Postgres) createTableQuery(m interface{}) *bun.CreateTableQuery {
	return p.db.NewCreateTable().
		Model(m).
		IfNotExists()
}

// DropTables удаляет все таблицы
func (p *Postgres) DropTables(ctx context.Context) error {
	for i := len(tableModels) - 1; i >= 0; i-- {
		m := tableModels[i]
		if _, err := p.db.NewDropTable().
			Model(m).
			IfExists().
			Cascade().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", m, err)
		}
	}

	p.logger.Info("Tables dropped", zap.Int("count", len(tableModels)))
	return nil
}

// ResetTables пересоздает схему с нуля
func (p *Postgres) ResetTables(ctx context.Context) error {
	if err := p.DropTables(ctx); err != nil {
		return err
	}
	return p.CreateTables(ctx)
}

// Counts возвращает количество строк в каждой таблице
func (p *Postgres) Counts(ctx context.Context) (model.RowCounts, error) {
	var counts model.RowCounts

	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{(*model.Song)(nil), &counts.Songs},
		{(*model.Artist)(nil), &counts.Artists},
		{(*model.User)(nil), &counts.Users},
		{(*model.TimeEntry)(nil), &counts.Times},
		{(*model.SongPlay)(nil), &counts.SongPlays},
	}

	for _, target := range targets {
		n, err := p.db.NewSelect().Model(target.model).Count(ctx)
		if err != nil {
			return counts, fmt.Errorf("failed to count rows for %T: %w", target.model, err)
		}
		*target.dest = int64(n)
	}

	return counts, nil
}
