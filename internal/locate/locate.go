// Package locate implements the optional best-effort game-path
// auto-detection collaborator: it only ever pre-fills a GameVersion's
// GamePath when the user explicitly asks for it, and the core registry
// never calls it implicitly.
package locate

import (
	"os"
	"path/filepath"
)

// groupFileName is the file every real Duke Nukem 3D install ships,
// regardless of engine — its presence is what promotes a candidate
// directory to a located game path.
const groupFileName = "DUKE3D.GRP"

// GameLocator produces candidate install directories worth checking; a
// concrete implementation knows how to ask one storefront or platform for
// its installed-games list (Steam, GOG, a fixed anthology layout, ...).
type GameLocator interface {
	SearchPaths() []string
}

// Exists reports whether path exists on disk.
type Exists func(path string) bool

// LocateGames asks locator for candidate directories and keeps only the
// ones that actually contain a Duke Nukem 3D group file, deduplicating
// repeats (the same Steam library can appear via more than one search
// path).
func LocateGames(locator GameLocator, exists Exists) []string {
	if exists == nil {
		exists = defaultExists
	}

	var found []string
	seen := make(map[string]bool)
	for _, path := range locator.SearchPaths() {
		if path == "" || seen[path] {
			continue
		}
		if !exists(filepath.Join(path, groupFileName)) {
			continue
		}
		seen[path] = true
		found = append(found, path)
	}
	return found
}

func defaultExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
