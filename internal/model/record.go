// Package model содержит модели входных записей.
//
// Группа: RECORDS - Сырые записи JSON
// Содержит: SongRecord, LogEvent, FlexibleID
package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// SongRecord запись файла метаданных песни.
// Указатели позволяют отличить отсутствующий ключ от нулевого значения.
type SongRecord struct {
	SongID          *string  `json:"song_id"`
	Title           *string  `json:"title"`
	ArtistID        *string  `json:"artist_id"`
	Year            *int     `json:"year"`
	Duration        *float64 `json:"duration"`
	ArtistName      *string  `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// Validate проверяет наличие обязательных полей
func (r *SongRecord) Validate() error {
	var errs ValidationErrors

	errs = collect(errs, ValidatePresent("song_id", r.SongID != nil))
	errs = collect(errs, ValidatePresent("title", r.Title != nil))
	errs = collect(errs, ValidatePresent("artist_id", r.ArtistID != nil))
	errs = collect(errs, ValidatePresent("year", r.Year != nil))
	errs = collect(errs, ValidatePresent("duration", r.Duration != nil))
	errs = collect(errs, ValidatePresent("artist_name", r.ArtistName != nil))

	if r.SongID != nil {
		errs = collect(errs, ValidateRequired("song_id", *r.SongID))
	}
	if r.ArtistID != nil {
		errs = collect(errs, ValidateRequired("artist_id", *r.ArtistID))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// LogEvent запись файла журнала событий
type LogEvent struct {
	TS        *int64     `json:"ts"`
	Page      *string    `json:"page"`
	UserID    FlexibleID `json:"userId"`
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	Gender    *string    `json:"gender"`
	Level     *string    `json:"level"`
	Song      *string    `json:"song"`
	Artist    *string    `json:"artist"`
	Length    *float64   `json:"length"`
	SessionID *int64     `json:"sessionId"`
	Location  *string    `json:"location"`
	UserAgent *string    `json:"userAgent"`
}

// IsNextSong проверяет, является ли событие воспроизведением трека
func (e *LogEvent) IsNextSong() bool {
	return e.Page != nil && *e.Page == PageNextSong
}

// Validate проверяет наличие обязательных полей.
// Для событий NextSong дополнительно требуются userId, level и sessionId.
func (e *LogEvent) Validate() error {
	var errs ValidationErrors

	errs = collect(errs, ValidatePresent("ts", e.TS != nil))
	errs = collect(errs, ValidatePresent("page", e.Page != nil))

	if e.IsNextSong() {
		errs = collect(errs, ValidateRequired("userId", e.UserID.String()))
		if e.UserID.String() != "" {
			if _, err := e.UserID.Int64(); err != nil {
				errs = append(errs, ValidationError{Field: "userId", Message: "is not an integer"})
			}
		}
		errs = collect(errs, ValidatePresent("level", e.Level != nil))
		errs = collect(errs, ValidatePresent("sessionId", e.SessionID != nil))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// FlexibleID идентификатор, который в JSON может быть строкой или числом.
// Пустая строка и null означают отсутствие значения.
type FlexibleID struct {
	value string
}

// NewFlexibleID создает идентификатор из строки
func NewFlexibleID(value string) FlexibleID {
	return FlexibleID{value: value}
}

// UnmarshalJSON реализует json.Unmarshaler
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		id.value = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id.value = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	id.value = n.String()
	return nil
}

// MarshalJSON реализует json.Marshaler
func (id FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// String возвращает строковое представление
func (id FlexibleID) String() string {
	return id.value
}

// Int64 возвращает числовое представление
func (id FlexibleID) Int64() (int64, error) {
	return strconv.ParseInt(id.value, 10, 64)
}
