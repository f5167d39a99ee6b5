// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: TimeEntry
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// TimeEntry представляет разложение момента воспроизведения на календарные атрибуты
type TimeEntry struct {
	bun.BaseModel `bun:"table:time,alias:t"`

	StartTime time.Time `bun:"start_time,pk,type:timestamp" json:"start_time"`
	Hour      int       `bun:"hour,type:integer" json:"hour"`
	Day       int       `bun:"day,type:integer" json:"day"`
	Week      int       `bun:"week,type:integer" json:"week"`
	Month     int       `bun:"month,type:integer" json:"month"`
	Year      int       `bun:"year,type:integer" json:"year"`
	Weekday   string    `bun:"weekday,type:varchar" json:"weekday"`
}
