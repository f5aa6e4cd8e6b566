package launch

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/journal"
)

// writeEmptyGroupFile writes a minimal, valid (zero-entry) Build engine
// group file, so Stage's demo-extraction step can open it successfully.
func writeEmptyGroupFile(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("KenSilverman")
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, uint32(0)))
}

func TestScriptArgumentsSetAddJoined(t *testing.T) {
	args := NewScriptArguments()
	args.Set(KeyGamePath, "/games/atomic")
	args.Add(KeyGroup, "a.grp")
	args.Add(KeyGroup, "b.grp")

	assert.Equal(t, "/games/atomic", args.Get(KeyGamePath))
	assert.Equal(t, []string{"a.grp", "b.grp"}, args.All(KeyGroup))
	assert.Equal(t, "a.grp b.grp", args.Joined(KeyGroup))
	assert.True(t, args.Has(KeyGroup))
	assert.False(t, args.Has(KeyArguments))
}

func newHost() *gameversion.GameVersion {
	return &gameversion.GameVersion{
		ID:                    "atomic",
		GamePath:              "/games/atomic",
		GameExecutableName:    "DUKE3D.EXE",
		ModDirectoryName:      "Atomic",
		GroupFileArgumentFlag: "-g ",
		ConFileArgumentFlag:   "-x ",
		DefFileArgumentFlag:   "-h ",
		MapFileArgumentFlag:   "-map ",
		RelativeConFilePath:   true,
	}
}

func newModGameVersion() *catalog.ModGameVersion {
	mod := &catalog.Mod{
		Name: "Test Mod",
		Versions: []catalog.ModVersion{
			{
				Types: []catalog.ModVersionType{
					{
						GameVersions: []catalog.ModGameVersion{
							{
								GameVersionID: "atomic",
								Files: []catalog.ModFile{
									{FileName: "MYMOD.GRP", Type: "grp"},
									{FileName: "MYMOD.CON", Type: "con"},
									{FileName: "MYMOD.MAP", Type: "map"},
								},
							},
						},
					},
				},
			},
		},
	}
	mod.Relink()
	return &mod.Versions[0].Types[0].GameVersions[0]
}

func TestBuildScriptArgumentsAndGenerateNativeCommand(t *testing.T) {
	host := newHost()
	mgv := newModGameVersion()

	args := BuildScriptArguments(host, mgv, "/games/atomic/MODSDIR", "/games/atomic/MAPSDIR", "/games/atomic/MYMOD.MAP", "", "", nil)
	command := GenerateNativeCommand(args)

	assert.Contains(t, command, `"/games/atomic/DUKE3D.EXE"`)
	assert.Contains(t, command, "-g /games/atomic/MODSDIR/Atomic/MYMOD.GRP")
	assert.Contains(t, command, "-x MYMOD.CON")
	assert.Contains(t, command, "-map /games/atomic/MYMOD.MAP")
	assert.Equal(t, command, args.Get(KeyCommand))
}

func TestBuildScriptArgumentsAbsoluteConPath(t *testing.T) {
	host := newHost()
	host.RelativeConFilePath = false
	mgv := newModGameVersion()

	args := BuildScriptArguments(host, mgv, "/games/atomic/MODSDIR", "/games/atomic/MAPSDIR", "", "", "", nil)
	command := GenerateNativeCommand(args)

	assert.Contains(t, command, "-x /games/atomic/MODSDIR/Atomic/MYMOD.CON")
}

func TestGenerateDOSBoxCommandSubstitutesAndEscapes(t *testing.T) {
	host := newHost()
	mgv := newModGameVersion()
	args := BuildScriptArguments(host, mgv, "/games/atomic/MODSDIR", "/games/atomic/MAPSDIR", "", "", "", nil)

	lines := []string{
		`MOUNT C "$GAMEPATH$"`,
		`C:`,
		`$DUKE3D$ $GROUPFLAG$$GROUP$`,
		``,
	}
	command := GenerateDOSBoxCommand("/usr/bin/dosbox", "-conf foo.conf", lines, args)

	assert.Contains(t, command, `CALL "/usr/bin/dosbox" -conf foo.conf`)
	assert.Contains(t, command, `-c "MOUNT C \"/games/atomic\""`)
	assert.Contains(t, command, `-c "C:"`)
	assert.NotContains(t, command, `-c ""`)
}

func TestValidateRejectsUnconfiguredHost(t *testing.T) {
	host := newHost()
	req := Request{Host: host, ModGameVersion: newModGameVersion(), ModsDir: "/mods"}
	err := Validate(req, func(string) bool { return false })
	assert.Error(t, err)
}

func TestValidateRejectsMissingModFile(t *testing.T) {
	host := newHost()
	req := Request{Host: host, ModGameVersion: newModGameVersion(), ModsDir: "/mods"}
	exists := func(p string) bool { return p == host.GamePath }
	err := Validate(req, exists)
	assert.Error(t, err)
}

func TestValidateSkipsZipContainedFilesForEduke32Family(t *testing.T) {
	host := newHost()
	host.ID = "eduke32"
	mgv := &catalog.ModGameVersion{
		GameVersionID: "eduke32",
		Files:         []catalog.ModFile{{FileName: "MYMOD.GRP", Type: "grp"}},
	}
	req := Request{Host: host, ModGameVersion: mgv, ModsDir: "/mods"}
	exists := func(p string) bool { return p == host.GamePath }
	err := Validate(req, exists)
	assert.NoError(t, err)
}

func TestStageCreatesAndUnstageRemovesSymlinks(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	st, err := Stage(gameDir, modsDir, mapsDir, nil, false, filepath.Join(gameDir, "DUKE3D.EXE"))
	require.NoError(t, err)

	info, err := os.Lstat(st.ModsSymlinkPath())
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	require.NoError(t, Unstage(st))

	_, err = os.Lstat(st.ModsSymlinkPath())
	assert.True(t, os.IsNotExist(err))
}

func TestStageRefusesToReplaceNonSymlink(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(gameDir, modsSymlinkName), []byte("not a symlink"), 0o644))

	_, err := Stage(gameDir, modsDir, mapsDir, nil, false, filepath.Join(gameDir, "DUKE3D.EXE"))
	assert.Error(t, err)
}

func TestStageShadowsExistingDemos(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	demoPath := filepath.Join(gameDir, "CAPTURE0.DMO")
	require.NoError(t, os.WriteFile(demoPath, []byte("demo data"), 0o644))

	st, err := Stage(gameDir, modsDir, mapsDir, nil, false, filepath.Join(gameDir, "DUKE3D.EXE"))
	require.NoError(t, err)

	_, err = os.Stat(demoPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(demoPath + "_")
	assert.NoError(t, err)

	require.NoError(t, Unstage(st))

	_, err = os.Stat(demoPath)
	assert.NoError(t, err)
}

type fakeRunner struct {
	ran     bool
	command string
	onRun   func()
}

func (f *fakeRunner) Run(ctx context.Context, command string) error {
	f.ran = true
	f.command = command
	if f.onRun != nil {
		f.onRun()
	}
	return nil
}

func TestLaunchEndToEndNativeEngine(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	host := newHost()
	host.GamePath = gameDir

	modDir := filepath.Join(modsDir, host.ModDirectoryName)
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	writeEmptyGroupFile(t, filepath.Join(modDir, "MYMOD.GRP"))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "MYMOD.CON"), []byte("con data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "MYMOD.MAP"), []byte("map data"), 0o644))

	mgv := newModGameVersion()

	req := Request{
		Host:           host,
		ModGameVersion: mgv,
		ModsDir:        modsDir,
		MapsDir:        mapsDir,
	}
	runner := &fakeRunner{}
	exists := func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	}

	err := Launch(context.Background(), req, runner, exists)
	require.NoError(t, err)
	assert.True(t, runner.ran)
	assert.Contains(t, runner.command, "DUKE3D.EXE")

	_, err = os.Lstat(filepath.Join(gameDir, modsSymlinkName))
	assert.True(t, os.IsNotExist(err), "symlinks must be unstaged after launch returns")
}

func newIdentifiedModGameVersion(id, name, version string) *catalog.ModGameVersion {
	mod := &catalog.Mod{
		ID:   id,
		Name: name,
		Versions: []catalog.ModVersion{
			{
				Version: version,
				Types: []catalog.ModVersionType{
					{
						GameVersions: []catalog.ModGameVersion{
							{
								GameVersionID: "atomic",
								Files: []catalog.ModFile{
									{FileName: "MYMOD.GRP", Type: "grp"},
									{FileName: "MYMOD.CON", Type: "con"},
								},
							},
						},
					},
				},
			},
		},
	}
	mod.Relink()
	return &mod.Versions[0].Types[0].GameVersions[0]
}

func TestModIdentity_EmptyForUnlinkedModGameVersion(t *testing.T) {
	id, name, version := modIdentity(&catalog.ModGameVersion{GameVersionID: "atomic"})
	assert.Empty(t, id)
	assert.Empty(t, name)
	assert.Empty(t, version)
}

func TestModIdentity_WalksParentChain(t *testing.T) {
	mgv := newIdentifiedModGameVersion("duke-it-out", "Duke It Out in D.C.", "1.0")
	id, name, version := modIdentity(mgv)
	assert.Equal(t, "duke-it-out", id)
	assert.Equal(t, "Duke It Out in D.C.", name)
	assert.Equal(t, "1.0", version)
}

func launchReadyRequest(t *testing.T, gameDir, modsDir, mapsDir string, mgv *catalog.ModGameVersion) Request {
	t.Helper()
	host := newHost()
	host.GamePath = gameDir

	modDir := filepath.Join(modsDir, host.ModDirectoryName)
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	writeEmptyGroupFile(t, filepath.Join(modDir, "MYMOD.GRP"))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "MYMOD.CON"), []byte("con data"), 0o644))

	return Request{Host: host, ModGameVersion: mgv, ModsDir: modsDir, MapsDir: mapsDir}
}

func TestLaunch_WritesAndClearsInstalledModJournal(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	mgv := newIdentifiedModGameVersion("duke-it-out", "Duke It Out in D.C.", "1.0")
	req := launchReadyRequest(t, gameDir, modsDir, mapsDir, mgv)
	runner := &fakeRunner{}
	exists := func(p string) bool { _, err := os.Stat(p); return err == nil }

	var journalDuringRun *journal.InstalledModInfo
	runner.onRun = func() {
		info, err := journal.Load(gameDir)
		require.NoError(t, err)
		journalDuringRun = info
	}

	require.NoError(t, Launch(context.Background(), req, runner, exists))

	require.NotNil(t, journalDuringRun, "journal must be written before the engine is invoked")
	assert.Equal(t, "duke-it-out", journalDuringRun.ModID)
	assert.Equal(t, "1.0", journalDuringRun.ModVersion)

	after, err := journal.Load(gameDir)
	require.NoError(t, err)
	assert.Nil(t, after, "journal must be cleared once the launch unwinds")
}

func TestLaunch_BlocksWhenADifferentModIsAlreadyInstalled(t *testing.T) {
	gameDir := t.TempDir()
	modsDir := t.TempDir()
	mapsDir := t.TempDir()

	stuck, err := journal.NewInstalledModInfo("other-mod", "Other Mod", "2.0", time.Now(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, journal.Save(gameDir, stuck))

	mgv := newIdentifiedModGameVersion("duke-it-out", "Duke It Out in D.C.", "1.0")
	req := launchReadyRequest(t, gameDir, modsDir, mapsDir, mgv)
	runner := &fakeRunner{}
	exists := func(p string) bool { _, err := os.Stat(p); return err == nil }

	err = Launch(context.Background(), req, runner, exists)
	assert.Error(t, err)
	assert.False(t, runner.ran)
}
