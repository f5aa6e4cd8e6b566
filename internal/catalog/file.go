package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/Jeffail/gabs"
	"github.com/Masterminds/semver/v3"

	"duke3dmm/internal/diagnostic"
)

// acceptedFileFormat is the semver constraint the catalog JSON loader
// accepts for fileFormatVersion: any 1.x release, never 2.x (spec §6). The
// XML loader reads no file format version.
var acceptedFileFormat = mustConstraint("~1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

func checkFileFormatVersion(fileType, wantType, version string) error {
	if fileType != wantType {
		return fmt.Errorf("unexpected fileType %q, want %q", fileType, wantType)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid fileFormatVersion %q: %w", version, err)
	}
	if !acceptedFileFormat.Check(v) {
		return fmt.Errorf("unsupported fileFormatVersion %q", version)
	}
	return nil
}

type jsonModsFile struct {
	FileType          string          `json:"fileType"`
	FileFormatVersion string          `json:"fileFormatVersion"`
	Mods              []jsonMod       `json:"mods"`
}

// FileFromJSON parses a whole mods catalog JSON file (spec §6 "Mod catalog
// JSON file"). A fileType/fileFormatVersion mismatch is a hard error; the
// load is atomic — on any mod-level error, nothing is returned (spec §4.2
// "rejects partial loads atomically").
func FileFromJSON(data []byte) (*Collection, *diagnostic.Collector) {
	c := &diagnostic.Collector{}
	var file jsonModsFile
	if err := json.Unmarshal(data, &file); err != nil {
		c.Error("", "invalid JSON: %v", err)
		return nil, c
	}
	if err := checkFileFormatVersion(file.FileType, catalogFileType, file.FileFormatVersion); err != nil {
		c.Error("", "%v", err)
		return nil, c
	}

	col := NewCollection()
	for i, jm := range file.Mods {
		path := fmt.Sprintf("mods[%d]", i)
		modC := &diagnostic.Collector{}
		m := jm.toMod(modC)
		c.Merge(path, modC)
		if modC.HasErrors() {
			continue
		}
		if vc := m.Validate(); vc.HasErrors() {
			c.Merge(path, vc)
			continue
		}
		if err := col.AddMod(m); err != nil {
			c.Error(path, "%v", err)
		}
	}
	warnUnrecognizedModFields(data, c)

	if c.HasErrors() {
		return nil, c
	}
	return col, c
}

// knownModFields lists every top-level property jsonMod understands. Kept
// separate from the struct tags so a schema addition is one line here, not a
// reflection walk.
var knownModFields = map[string]bool{
	"id": true, "name": true, "type": true, "preferredVersion": true,
	"defaultVersionType": true, "website": true, "team": true,
	"versions": true, "downloads": true, "screenshots": true,
	"images": true, "videos": true, "notes": true, "relatedMods": true,
}

// warnUnrecognizedModFields re-parses data generically to catch mod
// properties a future catalog schema version added that this build's typed
// jsonMod silently drops, so --verbose surfaces them as warnings instead of
// the next save quietly forgetting them (spec §4.1 forward-compat note).
func warnUnrecognizedModFields(data []byte, c *diagnostic.Collector) {
	parsed, err := gabs.ParseJSON(data)
	if err != nil {
		return
	}
	mods, err := parsed.Path("mods").Children()
	if err != nil {
		return
	}
	for i, modJSON := range mods {
		children, err := modJSON.ChildrenMap()
		if err != nil {
			continue
		}
		for key := range children {
			if !knownModFields[key] {
				c.Warn(fmt.Sprintf("mods[%d].%s", i, key), "unrecognized catalog field")
			}
		}
	}
}

// ToJSON serializes the whole collection to the catalog file wire format.
func (col *Collection) ToJSON(fileFormatVersion string) ([]byte, error) {
	file := jsonModsFile{FileType: catalogFileType, FileFormatVersion: fileFormatVersion}
	for _, m := range col.mods {
		file.Mods = append(file.Mods, m.toJSONMod())
	}
	return json.MarshalIndent(file, "", "  ")
}
