package metrics

import "time"

// Interface определяет интерфейс для метрик загрузки
type Interface interface {
	// RecordFile записывает результат обработки файла
	RecordFile(kind string, ok bool, duration time.Duration)

	// AddRows добавляет количество вставленных строк в таблицу
	AddRows(table string, n int64)

	// RecordLookup записывает результат поиска трека в каталоге
	RecordLookup(found bool)

	// GetStats возвращает все метрики в виде map
	GetStats() map[string]interface{}
}
