package etl

import (
	"fmt"
	"time"

	"sparkify/internal/model"
)

// SongBatch строки, полученные из одной записи метаданных песни
type SongBatch struct {
	Song   model.Song
	Artist model.Artist
}

// TransformSong проецирует запись метаданных на строки songs и artists
func TransformSong(rec model.SongRecord) (SongBatch, error) {
	if err := rec.Validate(); err != nil {
		return SongBatch{}, err
	}

	return SongBatch{
		Song: model.Song{
			SongID:   *rec.SongID,
			Title:    *rec.Title,
			ArtistID: *rec.ArtistID,
			Year:     *rec.Year,
			Duration: *rec.Duration,
		},
		Artist: model.Artist{
			ArtistID:  *rec.ArtistID,
			Name:      *rec.ArtistName,
			Location:  deref(rec.ArtistLocation),
			Latitude:  rec.ArtistLatitude,
			Longitude: rec.ArtistLongitude,
		},
	}, nil
}

// PendingPlay воспроизведение до разрешения song_id и artist_id по каталогу
type PendingPlay struct {
	Play   model.SongPlay
	Title  *string
	Artist *string
	Length *float64
}

// HasLookupKey проверяет, заданы ли все поля для поиска в каталоге
func (p PendingPlay) HasLookupKey() bool {
	return p.Title != nil && p.Artist != nil && p.Length != nil
}

// Resolve возвращает строку songplays с найденными идентификаторами; match может быть nil
func (p PendingPlay) Resolve(match *model.SongMatch) model.SongPlay {
	play := p.Play
	if match != nil {
		songID, artistID := match.SongID, match.ArtistID
		play.SongID = &songID
		play.ArtistID = &artistID
	}
	return play
}

// LogBatch строки, полученные из одного файла журнала
type LogBatch struct {
	Times []model.TimeEntry
	Users []model.User
	Plays []PendingPlay
}

// userRow проекция события на колонки пользователя, используется как ключ дедупликации
type userRow struct {
	UserID    string
	FirstName string
	LastName  string
	Gender    string
	Level     string
}

// hasEmpty проверяет, есть ли в строке пустые поля
func (u userRow) hasEmpty() bool {
	return u.UserID == "" || u.FirstName == "" || u.LastName == "" || u.Gender == "" || u.Level == ""
}

// TransformLog раскладывает события одного файла на строки time, users и songplays.
// Учитываются только события NextSong. Порядок строк time и songplays совпадает с порядком событий.
func TransformLog(events []model.LogEvent, loc *time.Location) (LogBatch, error) {
	var batch LogBatch

	plays := make([]model.LogEvent, 0, len(events))
	for i := range events {
		if events[i].IsNextSong() {
			plays = append(plays, events[i])
		}
	}
	if len(plays) == 0 {
		return batch, nil
	}

	timestamps := make([]time.Time, 0, len(plays))
	for i := range plays {
		if err := plays[i].Validate(); err != nil {
			return LogBatch{}, fmt.Errorf("event %d: %w", i, err)
		}
		timestamps = append(timestamps, FromEpochMillis(*plays[i].TS, loc))
	}

	batch.Times = ExtractTime(timestamps).Entries()
	batch.Users = projectUsers(plays)

	batch.Plays = make([]PendingPlay, 0, len(plays))
	for i, ev := range plays {
		userID, _ := ev.UserID.Int64()
		batch.Plays = append(batch.Plays, PendingPlay{
			Play: model.SongPlay{
				StartTime: WallClock(timestamps[i]),
				UserID:    userID,
				Level:     deref(ev.Level),
				SessionID: *ev.SessionID,
				Location:  deref(ev.Location),
				UserAgent: deref(ev.UserAgent),
			},
			Title:  ev.Song,
			Artist: ev.Artist,
			Length: ev.Length,
		})
	}

	return batch, nil
}

// projectUsers удаляет точные дубликаты и строки с пустыми полями, сохраняя порядок первого появления
func projectUsers(events []model.LogEvent) []model.User {
	seen := make(map[userRow]struct{}, len(events))
	users := make([]model.User, 0)

	for _, ev := range events {
		row := userRow{
			UserID:    ev.UserID.String(),
			FirstName: deref(ev.FirstName),
			LastName:  deref(ev.LastName),
			Gender:    deref(ev.Gender),
			Level:     deref(ev.Level),
		}

		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}

		if row.hasEmpty() {
			continue
		}

		userID, err := ev.UserID.Int64()
		if err != nil {
			continue
		}

		users = append(users, model.User{
			UserID:    userID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Gender:    row.Gender,
			Level:     row.Level,
		})
	}

	return users
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
