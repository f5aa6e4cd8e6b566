package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"duke3dmm/internal/groupfile"
	"duke3dmm/internal/nocd"
)

// Staging records everything Stage created, so Unstage can tear it down
// unconditionally on every exit path (spec §4.7 step g, "This must happen
// on every exit path").
type Staging struct {
	gamePath string

	modsSymlinkPath string
	mapsSymlinkPath string

	renamedDemos    []string // original .DMO paths renamed to .DMO_
	extractedDemos  []string // .DMO paths created fresh in gamePath from group files
}

// ModsSymlinkPath returns the MODSDIR symlink's path within the game
// directory, valid once Stage has succeeded.
func (s *Staging) ModsSymlinkPath() string { return s.modsSymlinkPath }

// MapsSymlinkPath returns the MAPSDIR symlink's path within the game
// directory, valid once Stage has succeeded.
func (s *Staging) MapsSymlinkPath() string { return s.mapsSymlinkPath }

// OriginalFiles returns the full paths, inside gamePath, of the files that
// existed before staging and were set aside (shadow-renamed demos), for the installed-mod
// journal's restore-on-uninstall record (spec §4.5).
func (s *Staging) OriginalFiles() []string {
	out := make([]string, len(s.renamedDemos))
	for i, p := range s.renamedDemos {
		out[i] = strings.TrimSuffix(p, "_")
	}
	return out
}

// ModFiles returns the paths Stage created fresh in gamePath (demos
// extracted from the mod's group files), for the installed-mod journal.
func (s *Staging) ModFiles() []string {
	return append([]string(nil), s.extractedDemos...)
}

const (
	modsSymlinkName = "MODSDIR"
	mapsSymlinkName = "MAPSDIR"
)

// Stage prepares gamePath for a launch (spec §4.7 step e): symlinks
// modsDir/mapsDir in, shadow-renames existing demos, extracts embedded
// demos from the mod's group files, and applies the no-CD patch if
// applicable. On any failure it unwinds everything already done and
// returns an error — the caller must not proceed to invoke the engine.
func Stage(gamePath, modsDir, mapsDir string, groupFilePaths []string, applyNoCDPatch bool, executablePath string) (*Staging, error) {
	st := &Staging{gamePath: gamePath}

	modsLink := filepath.Join(gamePath, modsSymlinkName)
	if err := replaceSymlink(modsLink, modsDir); err != nil {
		return nil, fmt.Errorf("launch: staging %s: %w", modsSymlinkName, err)
	}
	st.modsSymlinkPath = modsLink

	mapsLink := filepath.Join(gamePath, mapsSymlinkName)
	if err := replaceSymlink(mapsLink, mapsDir); err != nil {
		Unstage(st)
		return nil, fmt.Errorf("launch: staging %s: %w", mapsSymlinkName, err)
	}
	st.mapsSymlinkPath = mapsLink

	renamed, err := shadowExistingDemos(gamePath)
	st.renamedDemos = renamed
	if err != nil {
		Unstage(st)
		return nil, fmt.Errorf("launch: shadowing existing demos: %w", err)
	}

	for _, groupPath := range groupFilePaths {
		extracted, err := extractDemosFromGroup(groupPath, gamePath)
		st.extractedDemos = append(st.extractedDemos, extracted...)
		if err != nil {
			Unstage(st)
			return nil, fmt.Errorf("launch: extracting demos from %s: %w", groupPath, err)
		}
	}

	if applyNoCDPatch {
		crackable, err := nocd.IsCrackable(executablePath)
		if err != nil {
			Unstage(st)
			return nil, fmt.Errorf("launch: checking no-CD status: %w", err)
		}
		if crackable {
			if err := nocd.Crack(executablePath, executablePath); err != nil {
				Unstage(st)
				return nil, fmt.Errorf("launch: applying no-CD patch: %w", err)
			}
		}
	}

	return st, nil
}

// Unstage reverses everything Stage did, in the opposite order, tolerating
// partial staging state (spec §4.7 step g). It is always safe to call,
// including with a partially-populated Staging from a failed Stage call.
func Unstage(st *Staging) error {
	if st == nil {
		return nil
	}
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, path := range st.extractedDemos {
		note(removeIfExists(path))
	}
	for _, renamedPath := range st.renamedDemos {
		original := strings.TrimSuffix(renamedPath, "_")
		note(renameIfExists(renamedPath, original))
	}
	if st.mapsSymlinkPath != "" {
		note(removeSymlinkIfPresent(st.mapsSymlinkPath))
	}
	if st.modsSymlinkPath != "" {
		note(removeSymlinkIfPresent(st.modsSymlinkPath))
	}
	return firstErr
}

// replaceSymlink points link at target, replacing an existing symlink but
// refusing to clobber a non-symlink file (spec §4.7 step e.1).
func replaceSymlink(link, target string) error {
	info, err := os.Lstat(link)
	if err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("refusing to replace non-symlink %q", link)
		}
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("removing existing symlink %q: %w", link, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, link)
}

func removeSymlinkIfPresent(link string) error {
	info, err := os.Lstat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("refusing to remove non-symlink %q", link)
	}
	return os.Remove(link)
}

// shadowExistingDemos renames every pre-existing *.DMO file in gameDir to
// *.DMO_, returning the list of renamed (shadow) paths (spec §4.7 step
// e.2). The engine may freely overwrite *.DMO during play; the shadow
// copy is what gets restored on unstage.
func shadowExistingDemos(gameDir string) ([]string, error) {
	entries, err := os.ReadDir(gameDir)
	if err != nil {
		return nil, err
	}
	var renamed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".dmo") {
			continue
		}
		original := filepath.Join(gameDir, entry.Name())
		shadow := original + "_"
		if err := os.Rename(original, shadow); err != nil {
			return renamed, err
		}
		renamed = append(renamed, shadow)
	}
	return renamed, nil
}

// extractDemosFromGroup opens groupPath as a group container and writes
// every embedded .DMO entry into destDir (spec §4.7 step e.3).
func extractDemosFromGroup(groupPath, destDir string) ([]string, error) {
	r, err := groupfile.Open(groupPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var written []string
	for _, demo := range r.DemoEntries() {
		data, err := r.ReadEntry(demo.Name)
		if err != nil {
			return written, err
		}
		destPath := filepath.Join(destDir, demo.Name)
		if err := os.WriteFile(destPath, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, destPath)
	}
	return written, nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func renameIfExists(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Rename(oldPath, newPath)
}
