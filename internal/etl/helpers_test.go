package etl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSongLine = `{"num_songs":1,"song_id":"S1","title":"Test","artist_id":"A1","year":2000,"duration":123.4,"artist_name":"Band","artist_location":"NY","artist_latitude":40.7,"artist_longitude":-74.0}`

	testNextSong = `{"artist":"Band","auth":"Logged In","firstName":"Lily","gender":"F","itemInSession":0,"lastName":"Koch","length":123.4,"level":"paid","location":"Chicago","method":"PUT","page":"NextSong","registration":1541048010796.0,"sessionId":818,"song":"Test","status":200,"ts":1541721977796,"userAgent":"Mozilla/5.0","userId":"15"}`
)

// writeFile создает файл с данными в подкаталоге dir
func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}
