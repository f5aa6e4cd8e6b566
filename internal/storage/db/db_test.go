package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duke3dmm/internal/storage/db"
)

func TestNewCreatesDatabaseAndRunsMigrations(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"file_hashes", "favourite_mods", "game_version_runtime", "launch_history"} {
		var count int
		err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestHashFileCachesUntilFileChanges(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "MOD.GRP")
	require.NoError(t, os.WriteFile(path, []byte("version one"), 0o644))

	first, err := database.HashFile(path, false)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	cached, err := database.GetCachedHash(path)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, first, cached.SHA1)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("version two, and longer"), 0o644))

	second, err := database.HashFile(path, false)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashFileMissingReturnsErr(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.HashFile(filepath.Join(t.TempDir(), "missing.grp"), false)
	assert.Error(t, err)
}

func TestHashFilesConcurrent(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	dir := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, string(rune('A'+i))+".grp")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
		paths = append(paths, path)
	}

	results, err := database.HashFiles(context.Background(), paths, false, 2)
	require.NoError(t, err)
	assert.Len(t, results, 5)
	for _, p := range paths {
		assert.NotEmpty(t, results[p])
	}
}

func TestFavouritesAddRemoveList(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	f := db.PersistedFavourite{Name: "Attrition", Version: "1.0", VersionType: "Standard"}
	require.NoError(t, database.AddFavourite(f))
	require.NoError(t, database.AddFavourite(f)) // duplicate is a no-op

	list, err := database.ListFavourites()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	removed, err := database.RemoveFavourite(f)
	require.NoError(t, err)
	assert.True(t, removed)

	removedAgain, err := database.RemoveFavourite(f)
	require.NoError(t, err)
	assert.False(t, removedAgain)
}

func TestRecordLaunchUpdatesRuntimeAndHistory(t *testing.T) {
	database, err := db.New(":memory:")
	require.NoError(t, err)
	defer database.Close()

	launchedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := db.LaunchRecord{
		LaunchID:       "11111111-1111-1111-1111-111111111111",
		GameVersionID:  "atomic",
		ModName:        "Attrition",
		ModVersion:     "1.0",
		ModVersionType: "Standard",
		LaunchedAt:     launchedAt,
	}
	require.NoError(t, database.RecordLaunch(rec))

	history, err := database.ListLaunchHistory("atomic")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.LaunchID, history[0].LaunchID)

	runtime, err := database.GetGameVersionRuntime("atomic")
	require.NoError(t, err)
	require.NotNil(t, runtime)
	require.NotNil(t, runtime.LastPlayedAt)
	assert.True(t, runtime.LastPlayedAt.Equal(launchedAt))
}
