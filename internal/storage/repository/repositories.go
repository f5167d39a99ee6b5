// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"

	"sparkify/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Убеждаемся, что Repositories реализует model.UnitOfWork
var _ model.UnitOfWork = (*Repositories)(nil)

// Repositories объединяет репозитории, работающие поверх одного bun.IDB (БД или транзакции)
type Repositories struct {
	Songs     *SongRepository
	Artists   *ArtistRepository
	Users     *UserRepository
	Times     *TimeRepository
	SongPlays *SongPlayRepository
}

// NewRepositories создает набор репозиториев
func NewRepositories(db bun.IDB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Songs:     NewSongRepository(db, logger),
		Artists:   NewArtistRepository(db, logger),
		Users:     NewUserRepository(db, logger),
		Times:     NewTimeRepository(db, logger),
		SongPlays: NewSongPlayRepository(db, logger),
	}
}

// InsertSongs вставляет песни
func (r *Repositories) InsertSongs(ctx context.Context, songs []model.Song) (int64, error) {
	return r.Songs.InsertIgnore(ctx, songs)
}

// InsertArtists вставляет исполнителей
func (r *Repositories) InsertArtists(ctx context.Context, artists []model.Artist) (int64, error) {
	return r.Artists.InsertIgnore(ctx, artists)
}

// InsertUsers вставляет пользователей
func (r *Repositories) InsertUsers(ctx context.Context, users []model.User) (int64, error) {
	return r.Users.InsertIgnore(ctx, users)
}

// InsertTimes вставляет записи времени
func (r *Repositories) InsertTimes(ctx context.Context, entries []model.TimeEntry) (int64, error) {
	return r.Times.InsertIgnore(ctx, entries)
}

// InsertSongPlays вставляет воспроизведения
func (r *Repositories) InsertSongPlays(ctx context.Context, plays []model.SongPlay) (int64, error) {
	return r.SongPlays.InsertIgnore(ctx, plays)
}

// FindSong ищет песню по точному совпадению названия, исполнителя и длительности
func (r *Repositories) FindSong(ctx context.Context, title, artistName string, duration float64) (*model.SongMatch, error) {
	return r.SongPlays.FindSong(ctx, title, artistName, duration)
}

// rowsAffected возвращает количество затронутых строк, игнорируя драйверы без поддержки
func rowsAffected(res interface{ RowsAffected() (int64, error) }) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
