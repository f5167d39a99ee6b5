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

// ArtistRepository реализует вставку и чтение исполнителей
type ArtistRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

// NewArtistRepository создает новый репозиторий исполнителей
func NewArtistRepository(db bun.IDB, logger *zap.Logger) *ArtistRepository {
	return &ArtistRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIgnore вставляет исполнителей, пропуская уже существующие artist_id
func (r *ArtistRepository) InsertIgnore(ctx context.Context, artists []model.Artist) (int64, error) {
	if len(artists) == 0 {
		return 0, nil
	}

	res, err := r.insertQuery(artists).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert artists: %w", err)
	}

	return rowsAffected(res), nil
}

// GetByID возвращает исполнителя по ID
func (r *ArtistRepository) GetByID(ctx context.Context, artistID string) (*model.Artist, error) {
	artist := new(model.Artist)

	err := r.db.NewSelect().
		Model(artist).
		Where("artist_id = ?", artistID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query artist by ID: %w", err)
	}

	return artist, nil
}

// insertQuery строит INSERT пропуская существующие artist_id
func (r *ArtistRepository) insertQuery(artists []model.Artist) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(&artists).
		On("CONFLICT (artist_id) DO NOTHING")
}
