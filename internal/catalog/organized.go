package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"duke3dmm/internal/strutil"
)

// GroupMode selects how OrganizedCollection groups mods for browsing.
type GroupMode int

const (
	GroupByGameVersion GroupMode = iota
	GroupByTeam
	GroupByAuthor
)

// OrganizedCollection is a read-only view over a Collection: it owns no
// mods, only indexes them, and rebuilds whenever the underlying Collection
// fires a change notification (spec §4.2, §9 "a view ... does not own, only
// indexes").
type OrganizedCollection struct {
	catalog *Collection
	mode    GroupMode
	groups  []string
	index   map[string][]*Mod
	selSlot int
}

// NewOrganizedCollection builds a view over col grouped by mode, and
// subscribes to col so the view rebuilds on every future change.
func NewOrganizedCollection(col *Collection, mode GroupMode) *OrganizedCollection {
	oc := &OrganizedCollection{catalog: col, mode: mode}
	oc.rebuild()
	col.Subscribe(oc.rebuild)
	return oc
}

func (oc *OrganizedCollection) rebuild() {
	oc.index = make(map[string][]*Mod)
	for _, m := range oc.catalog.Mods() {
		for _, key := range oc.groupKeysFor(m) {
			oc.index[key] = append(oc.index[key], m)
		}
	}
	oc.groups = oc.groups[:0]
	for key := range oc.index {
		oc.groups = append(oc.groups, key)
	}
	sort.Slice(oc.groups, func(i, j int) bool { return strutil.LessFold(oc.groups[i], oc.groups[j]) })
	oc.selSlot = 0
}

func (oc *OrganizedCollection) groupKeysFor(m *Mod) []string {
	switch oc.mode {
	case GroupByTeam:
		if m.Team != nil && m.Team.Name != "" {
			return []string{m.Team.Name}
		}
		return []string{"(no team)"}
	case GroupByAuthor:
		if m.Team != nil {
			var names []string
			for _, mem := range m.Team.Members {
				names = append(names, mem.Name)
			}
			if len(names) > 0 {
				return names
			}
		}
		return []string{"(unknown author)"}
	default: // GroupByGameVersion
		seen := make(map[string]bool)
		var keys []string
		for _, v := range m.Versions {
			for _, t := range v.Types {
				for _, gv := range t.GameVersions {
					if !seen[gv.GameVersionID] {
						seen[gv.GameVersionID] = true
						keys = append(keys, gv.GameVersionID)
					}
				}
			}
		}
		if len(keys) == 0 {
			return []string{"(unconfigured)"}
		}
		return keys
	}
}

// Groups returns the stable, sorted list of group keys.
func (oc *OrganizedCollection) Groups() []string {
	return oc.groups
}

// ModsInGroup returns the mods indexed under key.
func (oc *OrganizedCollection) ModsInGroup(key string) []*Mod {
	return oc.index[key]
}

// SelectedSlot returns the current selection slot index into Groups().
func (oc *OrganizedCollection) SelectedSlot() int {
	return oc.selSlot
}

// Select sets the current selection slot.
func (oc *OrganizedCollection) Select(slot int) error {
	if slot < 0 || slot >= len(oc.groups) {
		return fmt.Errorf("selection slot %d out of range", slot)
	}
	oc.selSlot = slot
	return nil
}

// Random draws a uniformly random mod from the entire underlying Collection
// (not scoped to the current group), matching the source's "random mod"
// selection (spec §4.2).
func (oc *OrganizedCollection) Random() *Mod {
	mods := oc.catalog.Mods()
	if len(mods) == 0 {
		return nil
	}
	return mods[rand.Intn(len(mods))]
}

// ModMatch is the result of Search: all three resolved indices plus direct
// object references. VersionIndex/TypeIndex are -1 when not resolved.
type ModMatch struct {
	ModIndex    int
	VersionIndex int
	TypeIndex   int
	Mod         *Mod
	Version     *ModVersion
	Type        *ModVersionType
}

type candidate struct {
	modIndex, versionIndex, typeIndex int
	text                              string
	specificity                       int // 0 = mod-level, 1 = version-level, 2 = type-level
}

// Search performs a prefix- and substring-tolerant lookup with a precedence
// ladder: exact whole-match wins; prefix beats substring; when several
// candidates tie within a tier, disambiguation across mod / version / type
// returns the most specific single hit when unique, otherwise an error
// (spec §4.2, scenario 1 in spec §8).
func (oc *OrganizedCollection) Search(query string) (*ModMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	var candidates []candidate
	for mi, m := range oc.catalog.Mods() {
		candidates = append(candidates, candidate{modIndex: mi, versionIndex: -1, typeIndex: -1, text: m.Name, specificity: 0})
		for vi, v := range m.Versions {
			vtext := strings.TrimSpace(m.Name + " " + v.Version)
			candidates = append(candidates, candidate{modIndex: mi, versionIndex: vi, typeIndex: -1, text: vtext, specificity: 1})
			for ti, t := range v.Types {
				ttext := strings.TrimSpace(vtext + " " + t.Type)
				candidates = append(candidates, candidate{modIndex: mi, versionIndex: vi, typeIndex: ti, text: ttext, specificity: 2})
			}
		}
	}

	pick := func(cands []candidate) (*candidate, error) {
		if len(cands) == 0 {
			return nil, nil
		}
		best := cands[0].specificity
		for _, c := range cands[1:] {
			if c.specificity > best {
				best = c.specificity
			}
		}
		var atBest []candidate
		for _, c := range cands {
			if c.specificity == best {
				atBest = append(atBest, c)
			}
		}
		if len(atBest) > 1 {
			return nil, fmt.Errorf("ambiguous search query %q matches %d entries", query, len(atBest))
		}
		return &atBest[0], nil
	}

	var exact, prefix, substr []candidate
	lowerQuery := strutil.ToLowerASCII(query)
	for _, c := range candidates {
		lowerText := strutil.ToLowerASCII(c.text)
		switch {
		case lowerText == lowerQuery:
			exact = append(exact, c)
		case strings.HasPrefix(lowerText, lowerQuery):
			prefix = append(prefix, c)
		case strings.Contains(lowerText, lowerQuery):
			substr = append(substr, c)
		}
	}

	for _, tier := range [][]candidate{exact, prefix, substr} {
		c, err := pick(tier)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return oc.resolveMatch(*c), nil
		}
	}

	return nil, fmt.Errorf("no mod matches search query %q", query)
}

func (oc *OrganizedCollection) resolveMatch(c candidate) *ModMatch {
	m := oc.catalog.Mods()[c.modIndex]
	match := &ModMatch{ModIndex: c.modIndex, VersionIndex: -1, TypeIndex: -1, Mod: m}

	versionIndex := c.versionIndex
	if versionIndex == -1 {
		versionIndex = preferredVersionIndex(m)
	}
	if versionIndex >= 0 && versionIndex < len(m.Versions) {
		match.VersionIndex = versionIndex
		match.Version = &m.Versions[versionIndex]
	}

	typeIndex := c.typeIndex
	if typeIndex == -1 && match.Version != nil {
		typeIndex = defaultVersionTypeIndex(m, match.Version)
	}
	if match.Version != nil && typeIndex >= 0 && typeIndex < len(match.Version.Types) {
		match.TypeIndex = typeIndex
		match.Type = &match.Version.Types[typeIndex]
	}

	return match
}

func preferredVersionIndex(m *Mod) int {
	if m.PreferredVersion != "" {
		for i, v := range m.Versions {
			if eqFold(v.Version, m.PreferredVersion) {
				return i
			}
		}
	}
	if len(m.Versions) > 0 {
		return 0
	}
	return -1
}

func defaultVersionTypeIndex(m *Mod, v *ModVersion) int {
	if m.DefaultVersionType != "" {
		for i, t := range v.Types {
			if eqFold(t.Type, m.DefaultVersionType) {
				return i
			}
		}
	}
	if len(v.Types) > 0 {
		return 0
	}
	return -1
}
