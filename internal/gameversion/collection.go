package gameversion

import (
	"fmt"
	"strings"

	"duke3dmm/internal/strutil"
)

// Collection is a mutable ordered registry of GameVersion (spec §4.3).
type Collection struct {
	versions []*GameVersion
	byID     map[string]*GameVersion
	observers []func()
}

// NewCollection creates an empty registry.
func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*GameVersion)}
}

// Subscribe registers an observer fired whenever the registry's contents
// change, including when a member GameVersion signals MarkModified.
func (c *Collection) Subscribe(o func()) {
	c.observers = append(c.observers, o)
}

func (c *Collection) fire() {
	for _, o := range c.observers {
		o()
	}
}

// Add appends gv, rejecting a duplicate id (invariant #10). It wires gv's
// onModified callback so future mutations raise the registry's signal.
func (c *Collection) Add(gv *GameVersion) error {
	if gv == nil {
		return fmt.Errorf("cannot add nil game version")
	}
	if err := gv.validateStatic(); err != nil {
		return err
	}
	key := strutil.ToLowerASCII(gv.ID)
	if _, exists := c.byID[key]; exists {
		return fmt.Errorf("duplicate game version id %q", gv.ID)
	}
	for _, other := range c.versions {
		if strutil.EqualFold(other.ModDirectoryName, gv.ModDirectoryName) {
			return fmt.Errorf("duplicate mod directory name %q (game versions %q and %q)", gv.ModDirectoryName, other.ID, gv.ID)
		}
	}
	gv.onModified = func(*GameVersion) { c.fire() }
	c.versions = append(c.versions, gv)
	c.byID[key] = gv
	c.fire()
	return nil
}

func (gv *GameVersion) validateStatic() error {
	if strings.TrimSpace(gv.ID) == "" {
		return fmt.Errorf("game version id must be non-empty")
	}
	if strings.TrimSpace(gv.ModDirectoryName) == "" {
		return fmt.Errorf("game version %q: modDirectoryName must be non-empty", gv.ID)
	}
	if gv.SkillStartValue < 0 || gv.SkillStartValue > 255 {
		return fmt.Errorf("game version %q: skillStartValue must be <= 255", gv.ID)
	}
	return nil
}

// All returns every registered GameVersion in registration order.
func (c *Collection) All() []*GameVersion {
	return c.versions
}

// GetByID returns the GameVersion with the given id, or nil.
func (c *Collection) GetByID(id string) *GameVersion {
	return c.byID[strutil.ToLowerASCII(id)]
}

// HasGameVersionWithID implements catalog.GameVersionResolver.
func (c *Collection) HasGameVersionWithID(id string) bool {
	_, ok := c.byID[strutil.ToLowerASCII(id)]
	return ok
}

// TreatsZipAsGroupFile implements catalog.EngineClassifier by id lookup.
func (c *Collection) TreatsZipAsGroupFile(gameVersionID string) bool {
	gv := c.GetByID(gameVersionID)
	return gv != nil && gv.TreatsZipAsGroupFile()
}

// CompatibleWithID returns every registered engine whose
// compatibleGameVersionIds contains id, optionally including id itself and
// optionally filtered to configured engines (spec §4.3).
func (c *Collection) CompatibleWithID(id string, includeSelf bool, onlyConfigured bool, exists func(string) bool) []*GameVersion {
	var out []*GameVersion
	for _, gv := range c.versions {
		if strutil.EqualFold(gv.ID, id) {
			if includeSelf && (!onlyConfigured || gv.IsConfigured(exists)) {
				out = append(out, gv)
			}
			continue
		}
		if containsFold(gv.CompatibleGameVersionIDs, id) {
			if !onlyConfigured || gv.IsConfigured(exists) {
				out = append(out, gv)
			}
		}
	}
	return out
}

func containsFold(set map[string]bool, id string) bool {
	for k, v := range set {
		if v && strutil.EqualFold(k, id) {
			return true
		}
	}
	return false
}

// ModGameVersionRef is the minimal shape CompatibleWithModGameVersions needs
// from a catalog.ModGameVersion, avoiding an import cycle with the catalog
// package.
type ModGameVersionRef interface {
	GetGameVersionID() string
}

// CompatibleWithModGameVersion is CompatibleWithID keyed by a mod's
// gameVersionId.
func (c *Collection) CompatibleWithModGameVersion(ref ModGameVersionRef, includeSelf, onlyConfigured bool, exists func(string) bool) []*GameVersion {
	return c.CompatibleWithID(ref.GetGameVersionID(), includeSelf, onlyConfigured, exists)
}

// EngineChoice pairs a compatible engine with the mod-game-versions it can load.
type EngineChoice struct {
	Engine         *GameVersion
	CompatibleRefs []ModGameVersionRef
}

// CompatibleWithAny pairs each matched engine in the registry with the list
// of the given refs it can load, useful when presenting a fallback prompt
// (spec §4.3, third overload).
func (c *Collection) CompatibleWithAny(refs []ModGameVersionRef, includeSelf, onlyConfigured bool, exists func(string) bool) []EngineChoice {
	matches := make(map[string]*EngineChoice)
	var order []string
	for _, ref := range refs {
		for _, gv := range c.CompatibleWithModGameVersion(ref, includeSelf, onlyConfigured, exists) {
			key := strutil.ToLowerASCII(gv.ID)
			choice, ok := matches[key]
			if !ok {
				choice = &EngineChoice{Engine: gv}
				matches[key] = choice
				order = append(order, key)
			}
			choice.CompatibleRefs = append(choice.CompatibleRefs, ref)
		}
	}
	out := make([]EngineChoice, 0, len(order))
	for _, key := range order {
		out = append(out, *matches[key])
	}
	return out
}
