package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duke3dmm/internal/storage/config"
)

func TestLoadSettingsDefaultsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.ModsDirectory)
	assert.False(t, cfg.NoColor)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
mods_directory: /home/player/duke3dmm/mods
maps_directory: /home/player/duke3dmm/maps
dosbox_path: /usr/bin/dosbox
no_color: true
last_launch:
  game_version_id: atomic
  mod_name: Attrition
  mod_version: "1.0"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/home/player/duke3dmm/mods", cfg.ModsDirectory)
	assert.Equal(t, "/usr/bin/dosbox", cfg.DOSBoxPath)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "atomic", cfg.LastLaunch.GameVersionID)
	assert.Equal(t, "Attrition", cfg.LastLaunch.ModName)
}

func TestSaveAndReloadSettings(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Settings{
		ModsDirectory: "/mods",
		MapsDirectory: "/maps",
		LastLaunch: config.LastLaunch{
			GameVersionID: "eduke32",
			ModName:       "Alien Armageddon",
		},
	}
	require.NoError(t, cfg.Save(dir))

	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.ModsDirectory, reloaded.ModsDirectory)
	assert.Equal(t, cfg.LastLaunch, reloaded.LastLaunch)
}
