package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
)

func newRegistry(t *testing.T, versions ...*gameversion.GameVersion) *gameversion.Collection {
	t.Helper()
	c := gameversion.NewCollection()
	for _, v := range versions {
		require.NoError(t, c.Add(v))
	}
	return c
}

func modWithGameVersions(ids ...string) *catalog.Mod {
	gameVersions := make([]catalog.ModGameVersion, len(ids))
	for i, id := range ids {
		gameVersions[i] = catalog.ModGameVersion{GameVersionID: id}
	}
	m := &catalog.Mod{
		ID:   "mod-1",
		Name: "Test Mod",
		Versions: []catalog.ModVersion{
			{
				Version: "1.0.0",
				Types: []catalog.ModVersionType{
					{Type: "", GameVersions: gameVersions},
				},
			},
		},
	}
	m.Relink()
	return m
}

func TestResolveDirectMatch(t *testing.T) {
	host := &gameversion.GameVersion{ID: "atomic", ModDirectoryName: "Atomic"}
	registry := newRegistry(t, host)
	mod := modWithGameVersions("atomic")

	res, err := Resolve(mod, 0, 0, host, registry, nil, nil)
	require.NoError(t, err)
	assert.Same(t, host, res.HostGameVersion)
	assert.Equal(t, "atomic", res.ModGameVersion.GameVersionID)
}

func TestResolveViaHostCompatibleList(t *testing.T) {
	host := &gameversion.GameVersion{
		ID: "eduke32", ModDirectoryName: "eDuke32",
		CompatibleGameVersionIDs: map[string]bool{"atomic": true},
	}
	registry := newRegistry(t, host)
	mod := modWithGameVersions("atomic")

	res, err := Resolve(mod, 0, 0, host, registry, nil, nil)
	require.NoError(t, err)
	assert.Same(t, host, res.HostGameVersion)
}

func TestResolveViaReverseCompatibleList(t *testing.T) {
	host := &gameversion.GameVersion{ID: "atomic", ModDirectoryName: "Atomic"}
	other := &gameversion.GameVersion{
		ID: "eduke32", ModDirectoryName: "eDuke32",
		CompatibleGameVersionIDs: map[string]bool{"atomic": true},
	}
	registry := newRegistry(t, host, other)
	mod := modWithGameVersions("eduke32")

	res, err := Resolve(mod, 0, 0, host, registry, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "eduke32", res.ModGameVersion.GameVersionID)
}

func TestResolveFallsBackToPrompt(t *testing.T) {
	host := &gameversion.GameVersion{ID: "regular", ModDirectoryName: "Regular", GamePath: "/games/regular"}
	alt := &gameversion.GameVersion{
		ID: "atomic", ModDirectoryName: "Atomic", GamePath: "/games/atomic",
		CompatibleGameVersionIDs: map[string]bool{},
	}
	registry := newRegistry(t, host, alt)
	mod := modWithGameVersions("atomic")
	exists := func(p string) bool { return true }

	var offered []string
	prompt := func(choices []gameversion.EngineChoice) (*gameversion.GameVersion, bool) {
		for _, c := range choices {
			offered = append(offered, c.Engine.ID)
		}
		return alt, true
	}

	res, err := Resolve(mod, 0, 0, host, registry, exists, prompt)
	require.NoError(t, err)
	assert.Same(t, alt, res.HostGameVersion)
	assert.Equal(t, "atomic", res.ModGameVersion.GameVersionID)
	assert.Contains(t, offered, "atomic")
}

func TestResolveAbortsWhenPromptDeclines(t *testing.T) {
	host := &gameversion.GameVersion{ID: "regular", ModDirectoryName: "Regular"}
	alt := &gameversion.GameVersion{ID: "atomic", ModDirectoryName: "Atomic", GamePath: "/games/atomic"}
	registry := newRegistry(t, host, alt)
	mod := modWithGameVersions("atomic")
	exists := func(p string) bool { return true }

	prompt := func(choices []gameversion.EngineChoice) (*gameversion.GameVersion, bool) {
		return nil, false
	}

	_, err := Resolve(mod, 0, 0, host, registry, exists, prompt)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestResolveErrorsWithoutPromptWhenIncompatible(t *testing.T) {
	host := &gameversion.GameVersion{ID: "regular", ModDirectoryName: "Regular"}
	registry := newRegistry(t, host)
	mod := modWithGameVersions("atomic")

	_, err := Resolve(mod, 0, 0, host, registry, nil, nil)
	assert.Error(t, err)
}
