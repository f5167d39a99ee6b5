// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Song, SongMatch
package model

import (
	"github.com/uptrace/bun"
)

// Song представляет песню из каталога
type Song struct {
	bun.BaseModel `bun:"table:songs,alias:song"`

	SongID   string  `bun:"song_id,pk,type:varchar" json:"song_id"`
	Title    string  `bun:"title,notnull,type:varchar" json:"title"`
	ArtistID string  `bun:"artist_id,notnull,type:varchar" json:"artist_id"`
	Year     int     `bun:"year,type:integer" json:"year"`
	Duration float64 `bun:"duration,notnull,type:double precision" json:"duration"`
}

// SongMatch результат поиска песни по названию, исполнителю и длительности
type SongMatch struct {
	SongID   string `json:"song_id"`
	ArtistID string `json:"artist_id"`
}
