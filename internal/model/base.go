// Package model содержит базовые модели и интерфейсы.
//
// Группа: BASE - Базовые компоненты
// Содержит: UnitOfWork, Store, RowCounts
package model

import "context"

// UnitOfWork представляет набор операций записи и поиска внутри одной транзакции.
// Все вставки идемпотентны: дубликаты первичного ключа молча игнорируются.
type UnitOfWork interface {
	InsertSongs(ctx context.Context, songs []Song) (int64, error)
	InsertArtists(ctx context.Context, artists []Artist) (int64, error)
	InsertUsers(ctx context.Context, users []User) (int64, error)
	InsertTimes(ctx context.Context, entries []TimeEntry) (int64, error)
	InsertSongPlays(ctx context.Context, plays []SongPlay) (int64, error)
	FindSong(ctx context.Context, title, artistName string, duration float64) (*SongMatch, error)
}

// Store представляет хранилище с транзакциями на уровне файла
type Store interface {
	// RunInTx выполняет fn в транзакции. Ошибка fn откатывает транзакцию.
	RunInTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// RowCounts содержит количество вставленных строк по таблицам
type RowCounts struct {
	Songs     int64 `json:"songs"`
	Artists   int64 `json:"artists"`
	Users     int64 `json:"users"`
	Times     int64 `json:"time"`
	SongPlays int64 `json:"songplays"`
}

// Add суммирует счетчики
func (c *RowCounts) Add(other RowCounts) {
	c.Songs += other.Songs
	c.Artists += other.Artists
	c.Users += other.Users
	c.Times += other.Times
	c.SongPlays += other.SongPlays
}

// Total возвращает общее количество строк
func (c RowCounts) Total() int64 {
	return c.Songs + c.Artists + c.Users + c.Times + c.SongPlays
}
