package download_test

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"duke3dmm/internal/download"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_WritesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("package-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "mod.zip")
	f := download.NewFetcher()

	require.NoError(t, f.Fetch(context.Background(), srv.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "package-bytes", string(got))
}

func TestFetcher_Fetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := download.NewFetcher()
	err := f.Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "mod.zip"))
	assert.Error(t, err)
}

func TestVerifySHA1_EmptyWantAlwaysPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("anything"), 0o644))

	ok, err := download.VerifySHA1(path, "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySHA1_MismatchFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("anything"), 0o644))

	ok, err := download.VerifySHA1(path, "0000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCombinedSHA1_OrderMatters(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "part1")
	b := filepath.Join(dir, "part2")
	require.NoError(t, os.WriteFile(a, []byte("AAA"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("BBB"), 0o644))

	forward, err := download.CombinedSHA1([]string{a, b})
	require.NoError(t, err)
	reversed, err := download.CombinedSHA1([]string{b, a})
	require.NoError(t, err)

	assert.NotEqual(t, forward, reversed)
}

func TestConcatenate_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "part1")
	b := filepath.Join(dir, "part2")
	require.NoError(t, os.WriteFile(a, []byte("AAA"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("BBB"), 0o644))

	dest := filepath.Join(dir, "nested", "COMBINED.GRP")
	require.NoError(t, download.Concatenate([]string{a, b}, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "AAABBB", string(got))
}

func TestExtractZip_FlattensEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "package.zip")
	writeTestZip(t, archivePath, map[string]string{
		"DUKE3D.GRP":       "group-bytes",
		"nested/EXTRA.CON": "con-bytes",
	})

	destDir := filepath.Join(dir, "out")
	require.NoError(t, download.ExtractZip(archivePath, destDir))

	grp, err := os.ReadFile(filepath.Join(destDir, "DUKE3D.GRP"))
	require.NoError(t, err)
	assert.Equal(t, "group-bytes", string(grp))

	con, err := os.ReadFile(filepath.Join(destDir, "EXTRA.CON"))
	require.NoError(t, err)
	assert.Equal(t, "con-bytes", string(con))
}

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}
