package launch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/journal"
)

// ProcessRunner hands the assembled command line off to an external
// process, blocking until it exits (spec §4.7 step f, §5 "blocking
// request/await API"). The engine's exit code is deliberately not
// interpreted by the orchestrator (spec §4.7 "Engine exit code is not
// interpreted").
type ProcessRunner interface {
	Run(ctx context.Context, command string) error
}

// MapLocator resolves a map file name to its final on-disk path when Launch
// has not found it in the game directory: Launch checks the game directory
// itself first, then calls the locator (the CLI's searches the maps
// directory). No path through the MAPSDIR symlink is tried. ok is false if
// the map could not be found.
type MapLocator func(mapFileName string) (path string, ok bool)

// Request bundles everything Launch needs for one invocation.
type Request struct {
	Host           *gameversion.GameVersion
	ModGameVersion *catalog.ModGameVersion

	ModsDir string
	MapsDir string

	IP, Port        string
	PassthroughArgs []string

	LocateMap MapLocator

	// DOSBoxPath/DOSBoxArgs/ScriptLines are only consulted when
	// Host.RequiresDOSBox is set.
	DOSBoxPath  string
	DOSBoxArgs  string
	ScriptLines []string

	// EnsureFiles is invoked before Validate to fetch any required mod file
	// that is missing from disk, implementing the host application's
	// downloadFile(url, destinationPath) collaborator (spec §6). Local-mode
	// launches leave this nil, matching "local mode never calls this".
	EnsureFiles func(ctx context.Context) error
}

// Exists reports whether path exists on disk; Validate and Stage both take
// this as a parameter so tests can fake the filesystem.
type Exists func(path string) bool

// Validate checks that the host engine is configured and every required
// mod file is present, per spec §4.7 step (a). Files known to live inside
// an eDuke32-family zip container are silently skipped, mirroring C2's own
// file-existence check.
func Validate(req Request, exists Exists) error {
	if req.Host == nil {
		return fmt.Errorf("launch: no host game version selected")
	}
	if req.Host.GamePath == "" || !exists(req.Host.GamePath) {
		return fmt.Errorf("launch: host game version %q is not configured", req.Host.ID)
	}
	if req.ModGameVersion == nil {
		return fmt.Errorf("launch: no mod game version selected")
	}

	modDir := filepath.Join(req.ModsDir, req.Host.ModDirectoryName)
	for _, f := range req.ModGameVersion.Files {
		if f.Type == "grp" && req.Host.TreatsZipAsGroupFile() {
			continue
		}
		path := filepath.Join(modDir, f.FileName)
		if !exists(path) {
			return fmt.Errorf("launch: missing required mod file %q", path)
		}
	}
	return nil
}

// Launch runs the full orchestration described in spec §4.7: validate,
// build the script-argument dictionary, generate a command line, stage the
// working directory, invoke the engine, and unstage unconditionally.
func Launch(ctx context.Context, req Request, runner ProcessRunner, exists Exists) error {
	if req.EnsureFiles != nil {
		if err := req.EnsureFiles(ctx); err != nil {
			return fmt.Errorf("launch: fetching missing mod files: %w", err)
		}
	}
	if err := Validate(req, exists); err != nil {
		return err
	}

	modID, modName, modVersion := modIdentity(req.ModGameVersion)
	if modID != "" {
		if prev, err := journal.Load(req.Host.GamePath); err != nil {
			return fmt.Errorf("launch: reading installed-mod journal: %w", err)
		} else if prev != nil && prev.ModID != modID {
			return fmt.Errorf("launch: %q is already installed in %q; uninstall it before launching a different mod", prev.ModName, req.Host.GamePath)
		}
	}

	modsSymlinkPath := filepath.Join(req.Host.GamePath, modsSymlinkName)
	mapsSymlinkPath := filepath.Join(req.Host.GamePath, mapsSymlinkName)

	resolvedMap := ""
	if mapFile := findMapFile(req.ModGameVersion); mapFile != "" {
		if inGameDir := filepath.Join(req.Host.GamePath, mapFile); exists(inGameDir) {
			resolvedMap = inGameDir
		} else if req.LocateMap != nil {
			if path, ok := req.LocateMap(mapFile); ok {
				resolvedMap = path
			}
		}
	}

	args := BuildScriptArguments(req.Host, req.ModGameVersion, modsSymlinkPath, mapsSymlinkPath, resolvedMap, req.IP, req.Port, req.PassthroughArgs)

	var command string
	if req.Host.RequiresDOSBox {
		command = GenerateDOSBoxCommand(req.DOSBoxPath, req.DOSBoxArgs, req.ScriptLines, args)
	} else {
		command = GenerateNativeCommand(args)
	}

	modDir := filepath.Join(req.ModsDir, req.Host.ModDirectoryName)
	var groupPaths []string
	for _, f := range req.ModGameVersion.Files {
		if f.Type == "grp" || f.Type == "zip" {
			groupPaths = append(groupPaths, filepath.Join(modDir, f.FileName))
		}
	}

	applyNoCDPatch := req.Host.ID == "atomic"
	executablePath := filepath.Join(req.Host.GamePath, req.Host.GameExecutableName)

	st, err := Stage(req.Host.GamePath, req.ModsDir, req.MapsDir, groupPaths, applyNoCDPatch, executablePath)
	if err != nil {
		return err
	}
	defer func() {
		Unstage(st)
		if modID != "" {
			journal.Clear(req.Host.GamePath)
		}
	}()

	if modID != "" {
		info, err := journal.NewInstalledModInfo(modID, modName, modVersion, time.Now(), st.OriginalFiles(), st.ModFiles())
		if err == nil {
			journal.Save(req.Host.GamePath, info)
		}
	}

	return runner.Run(ctx, command)
}

// modIdentity walks mgv's parent chain back up to the owning Mod, returning
// its id/name and the specific ModVersion's version string. Returns empty
// strings if mgv wasn't produced by Mod.Relink (e.g. a synthetic
// ModGameVersion built directly for a test), in which case the installed-mod
// journal is skipped entirely rather than written with a blank identity.
func modIdentity(mgv *catalog.ModGameVersion) (id, name, version string) {
	if mgv == nil {
		return "", "", ""
	}
	versionType := mgv.Parent()
	if versionType == nil {
		return "", "", ""
	}
	modVersion := versionType.Parent()
	if modVersion == nil {
		return "", "", ""
	}
	mod := modVersion.Parent()
	if mod == nil {
		return "", "", ""
	}
	version = modVersion.Version
	if version == "" {
		// ModVersion.Version may be empty to denote a mod's sole, unversioned
		// release; the journal requires a non-empty modVersion (spec §3).
		version = "unversioned"
	}
	return mod.ID, mod.Name, version
}

func findMapFile(mgv *catalog.ModGameVersion) string {
	for _, f := range mgv.Files {
		if f.Type == "map" {
			return f.FileName
		}
	}
	return ""
}
