// Package etl содержит конвейер загрузки: поиск файлов, разбор записей,
// разложение на строки таблиц и идемпотентную вставку.
package etl

import (
	"fmt"
	"strconv"
	"time"

	"sparkify/internal/model"
)

// FromEpochMillis переводит метку времени в миллисекундах в календарное время в зоне loc
func FromEpochMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc)
}

// WallClock возвращает показания часов t как время UTC.
// Колонки start_time имеют тип timestamp без зоны, поэтому в них пишется время зоны загрузки,
// совпадающее с колонками hour, day и weekday.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// TimeColumns параллельные колонки атрибутов времени; все срезы одной длины
type TimeColumns struct {
	Timestamps []time.Time
	Hours      []string
	Days       []string
	Weeks      []string
	Months     []string
	Years      []string
	Weekdays   []string
}

// Len возвращает количество строк
func (c TimeColumns) Len() int {
	return len(c.Timestamps)
}

// ExtractTime раскладывает метки времени на час, день, неделю года, месяц, год и день недели.
// Порядок сохраняется, дубликаты не удаляются.
func ExtractTime(ts []time.Time) TimeColumns {
	cols := TimeColumns{
		Timestamps: make([]time.Time, 0, len(ts)),
		Hours:      make([]string, 0, len(ts)),
		Days:       make([]string, 0, len(ts)),
		Weeks:      make([]string, 0, len(ts)),
		Months:     make([]string, 0, len(ts)),
		Years:      make([]string, 0, len(ts)),
		Weekdays:   make([]string, 0, len(ts)),
	}

	for _, t := range ts {
		cols.Timestamps = append(cols.Timestamps, t)
		cols.Hours = append(cols.Hours, fmt.Sprintf("%02d", t.Hour()))
		cols.Days = append(cols.Days, fmt.Sprintf("%02d", t.Day()))
		cols.Weeks = append(cols.Weeks, fmt.Sprintf("%02d", SundayWeek(t)))
		cols.Months = append(cols.Months, fmt.Sprintf("%02d", int(t.Month())))
		cols.Years = append(cols.Years, strconv.Itoa(t.Year()))
		cols.Weekdays = append(cols.Weekdays, t.Weekday().String())
	}

	return cols
}

// SundayWeek возвращает номер недели года, где неделя начинается с воскресенья,
// а дни до первого воскресенья относятся к неделе 0
func SundayWeek(t time.Time) int {
	yday := t.YearDay() - 1
	return (yday + 7 - int(t.Weekday())) / 7
}

// Entries превращает колонки в строки таблицы time
func (c TimeColumns) Entries() []model.TimeEntry {
	entries := make([]model.TimeEntry, 0, c.Len())
	for i := range c.Timestamps {
		entries = append(entries, model.TimeEntry{
			StartTime: WallClock(c.Timestamps[i]),
			Hour:      atoi(c.Hours[i]),
			Day:       atoi(c.Days[i]),
			Week:      atoi(c.Weeks[i]),
			Month:     atoi(c.Months[i]),
			Year:      atoi(c.Years[i]),
			Weekday:   c.Weekdays[i],
		})
	}
	return entries
}

// atoi разбирает числовую колонку; значения всегда формирует ExtractTime
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
