package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"duke3dmm/internal/storage/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ModPath(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	path := c.ModPath("eduke32", "duke-it-out")
	expected := filepath.Join(dir, "eduke32", "duke-it-out")
	assert.Equal(t, expected, path)
}

func TestCache_FilePath(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	path := c.FilePath("eduke32", "duke-it-out", "duke-it-out-manager.zip")
	expected := filepath.Join(dir, "eduke32", "duke-it-out", "duke-it-out-manager.zip")
	assert.Equal(t, expected, path)
}

func TestCache_Has(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	assert.False(t, c.Has("eduke32", "duke-it-out", "duke-it-out-manager.zip"))

	path := c.FilePath("eduke32", "duke-it-out", "duke-it-out-manager.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	assert.True(t, c.Has("eduke32", "duke-it-out", "duke-it-out-manager.zip"))
}

func TestCache_ListFiles(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	modPath := c.ModPath("eduke32", "duke-it-out")
	require.NoError(t, os.MkdirAll(filepath.Join(modPath, "subdir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(modPath, "file1.zip"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(modPath, "subdir", "file2.zip"), []byte("2"), 0644))

	files, err := c.ListFiles("eduke32", "duke-it-out")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestCache_ListFiles_UncachedModReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	files, err := c.ListFiles("eduke32", "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCache_Delete(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	path := c.FilePath("eduke32", "duke-it-out", "duke-it-out-manager.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	assert.True(t, c.Has("eduke32", "duke-it-out", "duke-it-out-manager.zip"))

	require.NoError(t, c.Delete("eduke32", "duke-it-out"))
	assert.False(t, c.Has("eduke32", "duke-it-out", "duke-it-out-manager.zip"))
}

func TestCache_Size(t *testing.T) {
	dir := t.TempDir()
	c := cache.New(dir)

	path := c.FilePath("eduke32", "duke-it-out", "duke-it-out-manager.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	size, err := c.Size("eduke32", "duke-it-out")
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)
}
