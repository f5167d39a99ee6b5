package etl

import (
	"context"
	"errors"
	"sort"
	"sync"

	"sparkify/internal/model"
)

// memStore хранилище в памяти с семантикой INSERT ... ON CONFLICT DO NOTHING
// и откатом всех изменений файла при ошибке
type memStore struct {
	mu    sync.Mutex
	state *memState

	// failSongPlays имитирует ошибку хранилища при вставке воспроизведений
	failSongPlays bool
}

type playKey struct {
	startMillis int64
	userID      int64
	sessionID   int64
}

type memState struct {
	songs     map[string]model.Song
	artists   map[string]model.Artist
	users     map[int64]model.User
	times     map[int64]model.TimeEntry
	plays     map[playKey]model.SongPlay
	playOrder []playKey
	nextPlay  int64
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		songs:    map[string]model.Song{},
		artists:  map[string]model.Artist{},
		users:    map[int64]model.User{},
		times:    map[int64]model.TimeEntry{},
		plays:    map[playKey]model.SongPlay{},
		nextPlay: 1,
	}}
}

func (s *memState) clone() *memState {
	c := &memState{
		songs:     make(map[string]model.Song, len(s.songs)),
		artists:   make(map[string]model.Artist, len(s.artists)),
		users:     make(map[int64]model.User, len(s.users)),
		times:     make(map[int64]model.TimeEntry, len(s.times)),
		plays:     make(map[playKey]model.SongPlay, len(s.plays)),
		playOrder: append([]playKey(nil), s.playOrder...),
		nextPlay:  s.nextPlay,
	}
	for k, v := range s.songs {
		c.songs[k] = v
	}
	for k, v := range s.artists {
		c.artists[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.times {
		c.times[k] = v
	}
	for k, v := range s.plays {
		c.plays[k] = v
	}
	return c
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, uow model.UnitOfWork) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{state: m.state.clone(), failSongPlays: m.failSongPlays}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

// songPlays возвращает воспроизведения в порядке вставки
func (m *memStore) songPlays() []model.SongPlay {
	m.mu.Lock()
	defer m.mu.Unlock()

	plays := make([]model.SongPlay, 0, len(m.state.playOrder))
	for _, k := range m.state.playOrder {
		plays = append(plays, m.state.plays[k])
	}
	return plays
}

func (m *memStore) counts() model.RowCounts {
	m.mu.Lock()
	defer m.mu.Unlock()

	return model.RowCounts{
		Songs:     int64(len(m.state.songs)),
		Artists:   int64(len(m.state.artists)),
		Users:     int64(len(m.state.users)),
		Times:     int64(len(m.state.times)),
		SongPlays: int64(len(m.state.plays)),
	}
}

type memTx struct {
	state         *memState
	failSongPlays bool
}

func (t *memTx) InsertSongs(_ context.Context, songs []model.Song) (int64, error) {
	var n int64
	for _, s := range songs {
		if _, ok := t.state.songs[s.SongID]; ok {
			continue
		}
		t.state.songs[s.SongID] = s
		n++
	}
	return n, nil
}

func (t *memTx) InsertArtists(_ context.Context, artists []model.Artist) (int64, error) {
	var n int64
	for _, a := range artists {
		if _, ok := t.state.artists[a.ArtistID]; ok {
			continue
		}
		t.state.artists[a.ArtistID] = a
		n++
	}
	return n, nil
}

func (t *memTx) InsertUsers(_ context.Context, users []model.User) (int64, error) {
	var n int64
	for _, u := range users {
		if _, ok := t.state.users[u.UserID]; ok {
			continue
		}
		t.state.users[u.UserID] = u
		n++
	}
	return n, nil
}

func (t *memTx) InsertTimes(_ context.Context, entries []model.TimeEntry) (int64, error) {
	var n int64
	for _, e := range entries {
		key := e.StartTime.UnixMilli()
		if _, ok := t.state.times[key]; ok {
			continue
		}
		t.state.times[key] = e
		n++
	}
	return n, nil
}

func (t *memTx) InsertSongPlays(_ context.Context, plays []model.SongPlay) (int64, error) {
	if t.failSongPlays {
		return 0, errors.New("songplays: connection reset")
	}

	var n int64
	for _, p := range plays {
		key := playKey{startMillis: p.StartTime.UnixMilli(), userID: p.UserID, sessionID: p.SessionID}
		if _, ok := t.state.plays[key]; ok {
			continue
		}
		p.SongPlayID = t.state.nextPlay
		t.state.nextPlay++
		t.state.plays[key] = p
		t.state.playOrder = append(t.state.playOrder, key)
		n++
	}
	return n, nil
}

func (t *memTx) FindSong(_ context.Context, title, artistName string, duration float64) (*model.SongMatch, error) {
	ids := make([]string, 0, len(t.state.songs))
	for id := range t.state.songs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		song := t.state.songs[id]
		artist, ok := t.state.artists[song.ArtistID]
		if !ok {
			continue
		}
		if song.Title == title && artist.Name == artistName && song.Duration == duration {
			return &model.SongMatch{SongID: song.SongID, ArtistID: song.ArtistID}, nil
		}
	}
	return nil, nil
}

