// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: SongPlay
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// SongPlay представляет одно воспроизведение трека.
// SongID и ArtistID равны nil, если трек не найден в каталоге.
// Тройка (start_time, user_id, session_id) уникальна, поэтому повторная загрузка не создает дубликатов.
type SongPlay struct {
	bun.BaseModel `bun:"table:songplays,alias:sp"`

	SongPlayID int64     `bun:"songplay_id,pk,autoincrement" json:"songplay_id"`
	StartTime  time.Time `bun:"start_time,notnull,type:timestamp,unique:songplay_event" json:"start_time"`
	UserID     int64     `bun:"user_id,notnull,type:integer,unique:songplay_event" json:"user_id"`
	Level      string    `bun:"level,type:varchar(5)" json:"level"`
	SongID     *string   `bun:"song_id,type:varchar" json:"song_id"`
	ArtistID   *string   `bun:"artist_id,type:varchar" json:"artist_id"`
	SessionID  int64     `bun:"session_id,notnull,type:integer,unique:songplay_event" json:"session_id"`
	Location   string    `bun:"location,type:varchar" json:"location"`
	UserAgent  string    `bun:"user_agent,type:varchar" json:"user_agent"`
}

// IsResolved проверяет, найден ли трек в каталоге
func (sp *SongPlay) IsResolved() bool {
	return sp.SongID != nil && sp.ArtistID != nil
}
