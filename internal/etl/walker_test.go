package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/B/C/TRAAAAW128F429D538.json", testSongLine)
	writeFile(t, root, "A/A/A/TRAAABD128F429CF47.json", testSongLine)
	writeFile(t, root, "A/readme.txt", "ignore me")
	writeFile(t, root, "top.json", testSongLine)
	writeFile(t, root, "A/upper.JSON", testSongLine)

	files, err := FindFiles(root, ".json")
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "A/A/A/TRAAABD128F429CF47.json"),
		filepath.Join(root, "A/B/C/TRAAAAW128F429D538.json"),
		filepath.Join(root, "top.json"),
	}
	assert.Equal(t, want, files)

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
}

func TestFindFiles_SymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data/song.json", testSongLine)

	if err := os.Symlink(root, filepath.Join(root, "data", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := FindFiles(root, ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "data/song.json")}, files)
}

func TestFindFiles_Errors(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "missing"), ".json")
	assert.Error(t, err)

	file := writeFile(t, t.TempDir(), "song.json", testSongLine)
	_, err = FindFiles(file, ".json")
	assert.Error(t, err)
}

func TestFindFiles_EmptyDir(t *testing.T) {
	files, err := FindFiles(t.TempDir(), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)
}
