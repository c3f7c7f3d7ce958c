package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestDiscover_FiltersExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mkv")
	touch(t, dir, "show.mp4")
	touch(t, dir, "notes.txt")
	touch(t, dir, "season.MKV")

	files, err := Discover(dir, "mkv")
	require.NoError(t, err)
	assert.Equal(t, []string{"movie.mkv", "season.MKV"}, basenames(files))
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Show", "Season 02"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Show", "Season 01"), 0o755))
	touch(t, filepath.Join(dir, "Show", "Season 02"), "ep01.mkv")
	touch(t, filepath.Join(dir, "Show", "Season 01"), "ep02.mkv")
	touch(t, filepath.Join(dir, "Show", "Season 01"), "ep01.mkv")

	files, err := Discover(dir, "mkv")
	require.NoError(t, err)
	require.Len(t, files, 3)
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i], "paths must be sorted")
	}
}

func TestDiscover_ReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mkv")

	files, err := Discover(dir, "mkv")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, filepath.IsAbs(files[0]))
}

func TestDiscover_EmptyResultIsNotAnError(t *testing.T) {
	files, err := Discover(t.TempDir(), "mkv")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), "mkv")
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestDiscover_RootIsAFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.mkv")
	_, err := Discover(filepath.Join(dir, "file.mkv"), "mkv")
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestDiscover_AcceptsDottedExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mkv")
	files, err := Discover(dir, ".mkv")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "/media/in/a.mp4", OutputPath("/media/in/a.mkv", "mp4"))
	assert.Equal(t, "/media/in/a.b.mp4", OutputPath("/media/in/a.b.mkv", "mp4"))
}

func TestNewJob(t *testing.T) {
	j := NewJob("/media/in/a.mkv", "mp4")
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "/media/in/a.mkv", j.Input)
	assert.Equal(t, "/media/in/a.mp4", j.Output)

	other := NewJob("/media/in/a.mkv", "mp4")
	assert.NotEqual(t, j.ID, other.ID)
}
