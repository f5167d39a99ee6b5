// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sparkify/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SongRepository реализует вставку и чтение песен
type SongRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

// NewSongRepository создает новый репозиторий песен
func NewSongRepository(db bun.IDB, logger *zap.Logger) *SongRepository {
	return &SongRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIgnore вставляет песни, пропуская уже существующие song_id
func (r *SongRepository) InsertIgnore(ctx context.Context, songs []model.Song) (int64, error) {
	if len(songs) == 0 {
		return 0, nil
	}

	res, err := r.insertQuery(songs).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert songs: %w", err)
	}

	return rowsAffected(res), nil
}

// GetByID возвращает песню по ID
func (r *SongRepository) GetByID(ctx context.Context, songID string) (*model.Song, error) {
	song := new(model.Song)

	err := r.db.NewSelect().
		Model(song).
		Where("song_id = ?", songID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query song by ID: %w", err)
	}

	return song, nil
}

// insertQuery строит INSERT пропуская существующие song_id
func (r *SongRepository) insertQuery(songs []model.Song) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(&songs).
		On("CONFLICT (song_id) DO NOTHING")
}
