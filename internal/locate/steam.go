package locate

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/andygrunwald/vdf"
)

// knownSteamAppIDs maps a Steam app id to the relative path, inside that
// app's install directory, where the Duke Nukem 3D group file actually
// lives — Megaton Edition nests it under "gameroot", World Tour does not.
var knownSteamAppIDs = map[string]string{
	"434050": "",         // Duke Nukem 3D: 20th Anniversary World Tour
	"225140": "gameroot", // Duke Nukem 3D: Megaton Edition
}

// SteamLocator implements GameLocator by reading Steam's library-folder and
// app-manifest VDF files, generalizing the original's Windows-registry
// lookups (Steam App 434050 / 225140) to Linux's on-disk Steam layout.
type SteamLocator struct {
	// Roots are candidate Steam installation directories, searched in
	// order; RootsOrDefault is used when this is empty.
	Roots []string
}

// RootsOrDefault returns s.Roots, or the conventional Linux Steam install
// locations if none were given.
func (s SteamLocator) RootsOrDefault() []string {
	if len(s.Roots) > 0 {
		return s.Roots
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
	}
}

// SearchPaths implements GameLocator: it walks every Steam library
// registered under each root and returns the install directory for any app
// id this package recognizes as a Duke Nukem 3D release.
func (s SteamLocator) SearchPaths() []string {
	var paths []string
	for _, root := range s.RootsOrDefault() {
		for _, library := range libraryPaths(root) {
			paths = append(paths, appInstallPaths(library)...)
		}
	}
	return paths
}

// libraryPaths parses steamRoot/steamapps/libraryfolders.vdf, falling back
// to treating steamRoot itself as the sole library when the file is
// missing (a fresh Steam install with only the default library).
func libraryPaths(steamRoot string) []string {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	f, err := os.Open(vdfPath)
	if err != nil {
		return []string{steamRoot}
	}
	defer f.Close()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		return []string{steamRoot}
	}

	folders, ok := parsed["libraryfolders"].(map[string]interface{})
	if !ok {
		return []string{steamRoot}
	}

	var libraries []string
	for key, value := range folders {
		if _, err := strconv.Atoi(key); err != nil {
			continue
		}
		switch v := value.(type) {
		case string:
			libraries = append(libraries, v)
		case map[string]interface{}:
			if p, ok := v["path"].(string); ok && p != "" {
				libraries = append(libraries, p)
			}
		}
	}
	if len(libraries) == 0 {
		return []string{steamRoot}
	}
	return libraries
}

// appInstallPaths checks libraryPath's steamapps directory for an
// appmanifest belonging to a known Duke Nukem 3D app id, returning the
// game's actual install directory (joined with that app's group-file
// subdirectory, if any).
func appInstallPaths(libraryPath string) []string {
	var paths []string
	for appID, groupFileSubdir := range knownSteamAppIDs {
		manifestPath := filepath.Join(libraryPath, "steamapps", "appmanifest_"+appID+".acf")
		f, err := os.Open(manifestPath)
		if err != nil {
			continue
		}
		parsed, err := vdf.NewParser(f).Parse()
		f.Close()
		if err != nil {
			continue
		}
		appState, ok := parsed["AppState"].(map[string]interface{})
		if !ok {
			continue
		}
		installDir, _ := appState["installdir"].(string)
		if installDir == "" {
			continue
		}
		installPath := filepath.Join(libraryPath, "steamapps", "common", installDir, groupFileSubdir)
		paths = append(paths, installPath)
	}
	return paths
}
