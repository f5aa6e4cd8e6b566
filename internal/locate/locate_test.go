package locate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duke3dmm/internal/locate"
)

type fakeLocator struct {
	paths []string
}

func (f fakeLocator) SearchPaths() []string { return f.paths }

func TestLocateGamesFiltersToDirectoriesWithGroupFile(t *testing.T) {
	withGroup := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(withGroup, "DUKE3D.GRP"), []byte("grp"), 0o644))

	withoutGroup := t.TempDir()

	locator := fakeLocator{paths: []string{withGroup, withoutGroup, withGroup}}
	found := locate.LocateGames(locator, nil)

	assert.Equal(t, []string{withGroup}, found)
}

func TestLocateGamesEmptyWhenNoCandidatesMatch(t *testing.T) {
	locator := fakeLocator{paths: []string{t.TempDir(), "/nonexistent/path"}}
	found := locate.LocateGames(locator, nil)
	assert.Empty(t, found)
}

func TestSteamLocatorSearchPathsEmptyWhenRootHasNoAppManifests(t *testing.T) {
	root := t.TempDir()
	loc := locate.SteamLocator{Roots: []string{root}}

	// With no libraryfolders.vdf and no appmanifests, no app ids resolve,
	// so SearchPaths should return nothing rather than the bare root
	// (the root alone has no appmanifest to report an install dir from).
	paths := loc.SearchPaths()
	assert.Empty(t, paths)
}
