package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Observer is notified synchronously after a Collection's structure changes
// (spec §5 "Signal emissions ... fire after the state change has committed
// and synchronously on the mutating thread"; spec §9 "a simple observer
// interface (subscribe/unsubscribe + synchronous fire) suffices").
type Observer func()

// Collection owns a set of Mods, indexed by id and name (C2).
type Collection struct {
	mods      []*Mod
	byID      map[string]*Mod
	byName    map[string]*Mod
	observers []Observer
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		byID:   make(map[string]*Mod),
		byName: make(map[string]*Mod),
	}
}

// Subscribe registers an observer fired after every structural change.
func (col *Collection) Subscribe(o Observer) {
	col.observers = append(col.observers, o)
}

func (col *Collection) fire() {
	for _, o := range col.observers {
		o()
	}
}

// Mods returns all mods in insertion order.
func (col *Collection) Mods() []*Mod {
	return col.mods
}

// HasModWithID reports whether a mod with the given id (case-insensitive) exists.
func (col *Collection) HasModWithID(id string) bool {
	_, ok := col.byID[strutilLower(id)]
	return ok
}

// HasModWithName reports whether a mod with the given name (case-insensitive) exists.
func (col *Collection) HasModWithName(name string) bool {
	_, ok := col.byName[strutilLower(name)]
	return ok
}

// GetModWithID returns the mod with the given id, or nil.
func (col *Collection) GetModWithID(id string) *Mod {
	return col.byID[strutilLower(id)]
}

// GetModWithName returns the mod with the given name, or nil.
func (col *Collection) GetModWithName(name string) *Mod {
	return col.byName[strutilLower(name)]
}

// AddMod validates and indexes m, rejecting invalid or duplicate mods.
func (col *Collection) AddMod(m *Mod) error {
	if m == nil {
		return fmt.Errorf("cannot add nil mod")
	}
	if vc := m.Validate(); vc.HasErrors() {
		return fmt.Errorf("mod %q failed validation: %s", m.ID, vc.Items()[0])
	}
	if col.HasModWithID(m.ID) {
		return fmt.Errorf("duplicate mod id %q", m.ID)
	}
	if col.HasModWithName(m.Name) {
		return fmt.Errorf("duplicate mod name %q", m.Name)
	}
	m.Relink()
	col.mods = append(col.mods, m)
	col.byID[strutilLower(m.ID)] = m
	col.byName[strutilLower(m.Name)] = m
	col.fire()
	return nil
}

// RemoveMod removes the mod with the given id, reporting whether it was found.
func (col *Collection) RemoveMod(id string) bool {
	key := strutilLower(id)
	m, ok := col.byID[key]
	if !ok {
		return false
	}
	delete(col.byID, key)
	delete(col.byName, strutilLower(m.Name))
	for i, other := range col.mods {
		if other == m {
			col.mods = append(col.mods[:i], col.mods[i+1:]...)
			break
		}
	}
	col.fire()
	return true
}

// Clear empties the collection.
func (col *Collection) Clear() {
	col.mods = nil
	col.byID = make(map[string]*Mod)
	col.byName = make(map[string]*Mod)
	col.fire()
}

// GameVersionResolver is the minimal C3 surface Collection needs to check
// invariant #8 without importing the gameversion package's full API.
type GameVersionResolver interface {
	HasGameVersionWithID(id string) bool
}

// CheckGameVersions verifies invariant #8: every ModGameVersion.gameVersionId
// resolves in registry. Returns one diagnostic per dangling reference.
func (col *Collection) CheckGameVersions(registry GameVersionResolver) []string {
	var problems []string
	for _, m := range col.mods {
		for _, v := range m.Versions {
			for _, t := range v.Types {
				for _, gv := range t.GameVersions {
					if !registry.HasGameVersionWithID(gv.GameVersionID) {
						problems = append(problems, fmt.Sprintf("mod %q version %q type %q references unknown game version %q", m.ID, v.Version, t.Type, gv.GameVersionID))
					}
				}
			}
		}
	}
	return problems
}

// LoadFrom dispatches on file extension (.json or .xml) and loads the whole
// catalog atomically: on any mod-level schema or validation error nothing is
// returned (spec §4.2 "rejects partial loads atomically").
func LoadFrom(path string) (*Collection, error) {
	col, _, err := LoadFromWithDiagnostics(path)
	return col, err
}

// LoadFromWithDiagnostics is LoadFrom plus every diagnostic recorded along
// the way (including non-fatal warnings like an unrecognized schema field),
// formatted for display behind a --verbose flag.
func LoadFromWithDiagnostics(path string) (*Collection, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var col *Collection
	var items []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		c, d := FileFromJSON(data)
		col = c
		for _, item := range d.Items() {
			items = append(items, item.String())
		}
	case ".xml":
		c, d := FileFromXML(data)
		col = c
		for _, item := range d.Items() {
			items = append(items, item.String())
		}
	default:
		return nil, nil, fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}

	if col == nil {
		return nil, nil, fmt.Errorf("catalog file %s failed to load: %s", path, strings.Join(items, "; "))
	}
	return col, items, nil
}

// SaveTo is the inverse of LoadFrom: it dispatches on extension and writes
// the whole collection.
func (col *Collection) SaveTo(path, fileFormatVersion string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = col.ToJSON(fileFormatVersion)
	case ".xml":
		data, err = col.ToXML()
	default:
		return fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("serializing catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}
