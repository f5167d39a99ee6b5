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

// SongPlayRepository реализует вставку воспроизведений и поиск трека в каталоге
type SongPlayRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

// NewSongPlayRepository создает новый репозиторий воспроизведений
func NewSongPlayRepository(db bun.IDB, logger *zap.Logger) *SongPlayRepository {
	return &SongPlayRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIgnore вставляет воспроизведения; повтор события (start_time, user_id, session_id) игнорируется
func (r *SongPlayRepository) InsertIgnore(ctx context.Context, plays []model.SongPlay) (int64, error) {
	if len(plays) == 0 {
		return 0, nil
	}

	res, err := r.insertQuery(plays).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert songplays: %w", err)
	}

	return rowsAffected(res), nil
}

// FindSong возвращает первую пару (song_id, artist_id), у которой совпадают название песни,
// имя исполнителя и длительность. Сравнение точное. Если совпадений нет, возвращает nil, nil.
func (r *SongPlayRepository) FindSong(ctx context.Context, title, artistName string, duration float64) (*model.SongMatch, error) {
	match := new(model.SongMatch)

	err := r.findSongQuery(title, artistName, duration).
		Scan(ctx, &match.SongID, &match.ArtistID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find song: %w", err)
	}

	r.logger.Debug("Song resolved",
		zap.String("title", title),
		zap.String("song_id", match.SongID),
		zap.String("artist_id", match.ArtistID))

	return match, nil
}

// insertQuery строит INSERT по ключу события (start_time, user_id, session_id)
func (r *SongPlayRepository) insertQuery(plays []model.SongPlay) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(&plays).
		ExcludeColumn("songplay_id").
		On("CONFLICT (start_time, user_id, session_id) DO NOTHING").
		Returning("NULL")
}

// findSongQuery строит поиск трека по точному совпадению названия, исполнителя и длительности
func (r *SongPlayRepository) findSongQuery(title, artistName string, duration float64) *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("songs AS song").
		ColumnExpr("song.song_id, song.artist_id").
		Join("JOIN artists AS artist ON artist.artist_id = song.artist_id").
		Where("song.title = ?", title).
		Where("artist.name = ?", artistName).
		Where("song.duration = ?", duration).
		Limit(1)
}
