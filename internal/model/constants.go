// Package model содержит константы для моделей.
//
// Группа: BASE - Базовые компоненты
// Содержит: FileKind, Page, имена таблиц
package model

// FileKind представляет тип входного файла
type FileKind string

const (
	FileKindSong FileKind = "song"
	FileKindLog  FileKind = "log"
)

// String возвращает строковое представление типа файла
func (k FileKind) String() string {
	return string(k)
}

// IsValid проверяет валидность типа файла
func (k FileKind) IsValid() bool {
	switch k {
	case FileKindSong, FileKindLog:
		return true
	default:
		return false
	}
}

// PageNextSong страница лога, соответствующая воспроизведению трека
const PageNextSong = "NextSong"

// DataFileExt расширение файлов с данными
const DataFileExt = ".json"

// Имена таблиц
const (
	TableSongs     = "songs"
	TableArtists   = "artists"
	TableUsers     = "users"
	TableTime      = "time"
	TableSongPlays = "songplays"
)
