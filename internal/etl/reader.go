package etl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"sparkify/internal/model"

	"github.com/goccy/go-json"
)

// maxLineSize ограничение на длину одной строки NDJSON
const maxLineSize = 4 * 1024 * 1024

// ReadSongFile читает файл метаданных песни. Файл должен содержать ровно одну запись.
func ReadSongFile(path string) (model.SongRecord, error) {
	records, err := readFile[model.SongRecord](path)
	if err != nil {
		return model.SongRecord{}, err
	}

	if len(records) != 1 {
		return model.SongRecord{}, &model.MalformedRecordError{
			Path: path,
			Err:  fmt.Errorf("expected exactly one song record, got %d", len(records)),
		}
	}

	return records[0], nil
}

// ReadLogFile читает файл журнала событий; пустой файл допустим
func ReadLogFile(path string) ([]model.LogEvent, error) {
	return readFile[model.LogEvent](path)
}

// readFile открывает файл и разбирает его построчно
func readFile[T any, PT interface {
	*T
	model.Validator
}](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return decodeLines[T, PT](f, path)
}

// decodeLines разбирает NDJSON: одна запись на строку, пустые строки пропускаются.
// Каждая запись проходит валидацию обязательных полей.
func decodeLines[T any, PT interface {
	*T
	model.Validator
}](r io.Reader, path string) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []T
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, &model.MalformedRecordError{Path: path, Line: line, Err: err}
		}
		if err := PT(&rec).Validate(); err != nil {
			return nil, &model.MalformedRecordError{Path: path, Line: line, Err: err}
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return records, nil
}
