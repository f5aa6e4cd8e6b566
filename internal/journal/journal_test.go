package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstalledModInfoDedupsFilesCaseInsensitively(t *testing.T) {
	info, err := NewInstalledModInfo("mod-1", "Some Mod", "1.0.0", time.Now(),
		[]string{"DUKE3D.GRP", "duke3d.grp"}, []string{"mymod.con"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DUKE3D.GRP"}, info.OriginalFiles)
	assert.True(t, info.HasOriginalFile("duke3d.grp"))
	assert.True(t, info.HasModFile("MYMOD.CON"))
}

func TestNewInstalledModInfoRejectsEmptyPath(t *testing.T) {
	_, err := NewInstalledModInfo("mod-1", "Some Mod", "1.0.0", time.Now(), []string{""}, nil)
	assert.Error(t, err)
}

func TestNewInstalledModInfoRequiresModID(t *testing.T) {
	_, err := NewInstalledModInfo("", "Some Mod", "1.0.0", time.Now(), nil, nil)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	info, err := NewInstalledModInfo("mod-1", "Some Mod", "1.0.0", ts,
		[]string{"DUKE3D.GRP"}, []string{"MYMOD.CON", "MYMOD.GRP"})
	require.NoError(t, err)

	data, err := info.ToJSON()
	require.NoError(t, err)

	reloaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, info.ModID, reloaded.ModID)
	assert.Equal(t, info.ModName, reloaded.ModName)
	assert.Equal(t, info.ModVersion, reloaded.ModVersion)
	assert.True(t, ts.Equal(reloaded.InstalledTimestamp))
	assert.Equal(t, info.OriginalFiles, reloaded.OriginalFiles)
	assert.Equal(t, info.ModFiles, reloaded.ModFiles)
}

func TestFromJSONRejectsWrongFileType(t *testing.T) {
	_, err := FromJSON([]byte(`{"fileType":"Mods","fileFormatVersion":"1.0.0","modId":"x","modName":"x","modVersion":"1.0.0","installedTimestamp":"2026-03-05T12:00:00Z"}`))
	assert.Error(t, err)
}

func TestFromJSONRejectsIncompatibleFormatVersion(t *testing.T) {
	_, err := FromJSON([]byte(`{"fileType":"Installed Mod","fileFormatVersion":"2.0.0","modId":"x","modName":"x","modVersion":"1.0.0","installedTimestamp":"2026-03-05T12:00:00Z"}`))
	assert.Error(t, err)
}

func TestLoadReturnsNilWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	info, err := Load(dir)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSaveLoadClearRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	info, err := NewInstalledModInfo("mod-1", "Some Mod", "1.0.0", ts, []string{"DUKE3D.GRP"}, []string{"MYMOD.CON"})
	require.NoError(t, err)

	require.NoError(t, Save(dir, info))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "mod-1", loaded.ModID)

	require.NoError(t, Clear(dir))

	loaded, err = Load(dir)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing an already-absent journal is not an error.
	require.NoError(t, Clear(dir))
}
