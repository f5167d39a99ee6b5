// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Artist
package model

import (
	"github.com/uptrace/bun"
)

// Artist представляет исполнителя из каталога песен
type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:artist"`

	ArtistID  string   `bun:"artist_id,pk,type:varchar" json:"artist_id"`
	Name      string   `bun:"name,notnull,type:varchar" json:"name"`
	Location  string   `bun:"location,type:varchar" json:"location"`
	Latitude  *float64 `bun:"latitude,type:double precision" json:"latitude"`
	Longitude *float64 `bun:"longitude,type:double precision" json:"longitude"`
}

// HasCoordinates проверяет, известны ли координаты исполнителя
func (a *Artist) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}
