// Package journal implements the installed-mod journal (C5): a JSON sidecar
// recording which mod currently occupies a game directory, so the launch
// orchestrator can block double-installs, restore originals on uninstall,
// and report the active mod to the user (spec §4.5).
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"duke3dmm/internal/strutil"
)

const (
	// FileName is the sidecar's fixed name within the game directory root.
	FileName = ".duke3d_mod.json"

	fileType          = "Installed Mod"
	fileFormatVersion = "1.0.0"
)

var acceptedFileFormat = mustConstraint("~1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// InstalledModInfo records the mod currently installed into a game
// directory: which mod/version it is, when it was installed, and the two
// ordered file sets needed to undo the install (spec §3).
type InstalledModInfo struct {
	ModID              string
	ModName            string
	ModVersion         string
	InstalledTimestamp time.Time

	// OriginalFiles are files that existed before install, to restore on
	// uninstall. ModFiles are files the install created, to delete on
	// uninstall. Both are ordered, case-insensitively de-duplicated sets
	// (invariant #11).
	OriginalFiles []string
	ModFiles      []string
}

// NewInstalledModInfo constructs a journal entry, rejecting empty or
// duplicate file paths per invariant #11.
func NewInstalledModInfo(modID, modName, modVersion string, installedAt time.Time, originalFiles, modFiles []string) (*InstalledModInfo, error) {
	if strings.TrimSpace(modID) == "" {
		return nil, fmt.Errorf("modId must be non-empty")
	}
	if strings.TrimSpace(modName) == "" {
		return nil, fmt.Errorf("modName must be non-empty")
	}
	if strings.TrimSpace(modVersion) == "" {
		return nil, fmt.Errorf("modVersion must be non-empty")
	}
	orig, err := dedupFiles("originalFiles", originalFiles)
	if err != nil {
		return nil, err
	}
	mod, err := dedupFiles("modFiles", modFiles)
	if err != nil {
		return nil, err
	}
	return &InstalledModInfo{
		ModID:              modID,
		ModName:            modName,
		ModVersion:         modVersion,
		InstalledTimestamp: installedAt,
		OriginalFiles:      orig,
		ModFiles:           mod,
	}, nil
}

func dedupFiles(field string, files []string) ([]string, error) {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("%s: path must be non-empty", field)
		}
		key := strutil.ToLowerASCII(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out, nil
}

// HasOriginalFile reports whether path is present (case-insensitively) in
// OriginalFiles.
func (i *InstalledModInfo) HasOriginalFile(path string) bool {
	return containsFold(i.OriginalFiles, path)
}

// HasModFile reports whether path is present (case-insensitively) in
// ModFiles.
func (i *InstalledModInfo) HasModFile(path string) bool {
	return containsFold(i.ModFiles, path)
}

func containsFold(files []string, path string) bool {
	for _, f := range files {
		if strutil.EqualFold(f, path) {
			return true
		}
	}
	return false
}

type jsonInstalledModInfo struct {
	FileType           string   `json:"fileType"`
	FileFormatVersion  string   `json:"fileFormatVersion"`
	ModID              string   `json:"modId"`
	ModName            string   `json:"modName"`
	ModVersion         string   `json:"modVersion"`
	InstalledTimestamp string   `json:"installedTimestamp"`
	OriginalFiles      []string `json:"originalFiles,omitempty"`
	ModFiles           []string `json:"modFiles,omitempty"`
}

// ToJSON serializes i to the `.duke3d_mod.json` wire format.
func (i *InstalledModInfo) ToJSON() ([]byte, error) {
	w := jsonInstalledModInfo{
		FileType:           fileType,
		FileFormatVersion:  fileFormatVersion,
		ModID:              i.ModID,
		ModName:            i.ModName,
		ModVersion:         i.ModVersion,
		InstalledTimestamp: i.InstalledTimestamp.UTC().Format(time.RFC3339),
		OriginalFiles:      i.OriginalFiles,
		ModFiles:           i.ModFiles,
	}
	return json.MarshalIndent(w, "", "  ")
}

// FromJSON parses a `.duke3d_mod.json` document, rejecting a mismatched
// fileType or an unsupported fileFormatVersion (spec §4.5).
func FromJSON(data []byte) (*InstalledModInfo, error) {
	var w jsonInstalledModInfo
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if !strutil.EqualFold(w.FileType, fileType) {
		return nil, fmt.Errorf("unexpected fileType %q, want %q", w.FileType, fileType)
	}
	v, err := semver.NewVersion(w.FileFormatVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid fileFormatVersion %q: %w", w.FileFormatVersion, err)
	}
	if !acceptedFileFormat.Check(v) {
		return nil, fmt.Errorf("unsupported fileFormatVersion %q", w.FileFormatVersion)
	}
	installedAt, err := time.Parse(time.RFC3339, w.InstalledTimestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid installedTimestamp %q: %w", w.InstalledTimestamp, err)
	}
	return NewInstalledModInfo(w.ModID, w.ModName, w.ModVersion, installedAt, w.OriginalFiles, w.ModFiles)
}

// Load reads the journal sidecar from gameDirectory, returning (nil, nil)
// if no mod is currently installed there — callers must tolerate a
// transiently absent file (spec §5).
func Load(gameDirectory string) (*InstalledModInfo, error) {
	data, err := os.ReadFile(journalPath(gameDirectory))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return FromJSON(data)
}

// Save writes the journal sidecar into gameDirectory. The file is small
// enough that an in-place write is acceptable; no temp-then-rename dance is
// required (spec §5).
func Save(gameDirectory string, info *InstalledModInfo) error {
	data, err := info.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(journalPath(gameDirectory), data, 0o644)
}

// Clear removes the journal sidecar from gameDirectory, used after a
// successful uninstall. Removing an already-absent file is not an error.
func Clear(gameDirectory string) error {
	err := os.Remove(journalPath(gameDirectory))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func journalPath(gameDirectory string) string {
	return filepath.Join(gameDirectory, FileName)
}
