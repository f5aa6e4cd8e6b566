// Package resolver implements the compatibility resolver (C6): given a
// chosen mod version/type and a host engine, picks the ModGameVersion that
// engine should load, falling back to an alternative-engine prompt when the
// host can't load any of them (spec §4.6). The resolver never mutates
// state.
package resolver

import (
	"errors"
	"fmt"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/strutil"
)

// ErrAborted is returned when the caller's PromptFunc declines to pick an
// alternative engine.
var ErrAborted = errors.New("resolver: aborted by caller")

// Resolution is the resolver's total output: the engine that will run the
// mod, paired with the specific ModGameVersion it will load.
type Resolution struct {
	HostGameVersion *gameversion.GameVersion
	ModGameVersion  *catalog.ModGameVersion
}

// PromptFunc lets the caller pick among alternative compatible engines when
// the host engine can't load any of the mod's game-versions (spec §4.6 step
// 4). Returning ok=false aborts the resolution.
type PromptFunc func(choices []gameversion.EngineChoice) (chosen *gameversion.GameVersion, ok bool)

// Resolve implements the four-step algorithm from spec §4.6.
func Resolve(
	mod *catalog.Mod,
	versionIndex, versionTypeIndex int,
	host *gameversion.GameVersion,
	registry *gameversion.Collection,
	exists func(path string) bool,
	prompt PromptFunc,
) (*Resolution, error) {
	if mod == nil {
		return nil, fmt.Errorf("resolver: mod must not be nil")
	}
	if host == nil {
		return nil, fmt.Errorf("resolver: host game version must not be nil")
	}
	if versionIndex < 0 || versionIndex >= len(mod.Versions) {
		return nil, fmt.Errorf("resolver: version index %d out of range for mod %q", versionIndex, mod.Name)
	}
	version := &mod.Versions[versionIndex]
	if versionTypeIndex < 0 || versionTypeIndex >= len(version.Types) {
		return nil, fmt.Errorf("resolver: version type index %d out of range for mod %q version %q", versionTypeIndex, mod.Name, version.Version)
	}
	versionType := &version.Types[versionTypeIndex]

	for i := range versionType.GameVersions {
		mgv := &versionType.GameVersions[i]
		if isCompatible(mgv, host, registry) {
			return &Resolution{HostGameVersion: host, ModGameVersion: mgv}, nil
		}
	}

	refs := make([]gameversion.ModGameVersionRef, len(versionType.GameVersions))
	for i := range versionType.GameVersions {
		refs[i] = &versionType.GameVersions[i]
	}
	choices := registry.CompatibleWithAny(refs, true, true, exists)
	if len(choices) == 0 {
		return nil, fmt.Errorf("resolver: no game version configured on this system can load mod %q", mod.Name)
	}
	if prompt == nil {
		return nil, fmt.Errorf("resolver: mod %q is incompatible with %q and no prompt callback was supplied", mod.Name, host.ID)
	}

	chosen, ok := prompt(choices)
	if !ok || chosen == nil {
		return nil, ErrAborted
	}
	for _, choice := range choices {
		if choice.Engine != chosen {
			continue
		}
		ref, ok := choice.CompatibleRefs[0].(*catalog.ModGameVersion)
		if !ok {
			return nil, fmt.Errorf("resolver: internal error resolving chosen engine %q", chosen.ID)
		}
		return &Resolution{HostGameVersion: chosen, ModGameVersion: ref}, nil
	}
	return nil, fmt.Errorf("resolver: chosen game version %q was not among the offered alternatives", chosen.ID)
}

// isCompatible implements spec §4.6 step 2's three-way symmetric check: the
// mod-game-version targets host directly, host declares it compatible, or
// the mod-game-version's own engine declares host compatible.
func isCompatible(mgv *catalog.ModGameVersion, host *gameversion.GameVersion, registry *gameversion.Collection) bool {
	if strutil.EqualFold(mgv.GameVersionID, host.ID) {
		return true
	}
	if containsFold(host.CompatibleGameVersionIDs, mgv.GameVersionID) {
		return true
	}
	if other := registry.GetByID(mgv.GameVersionID); other != nil {
		if containsFold(other.CompatibleGameVersionIDs, host.ID) {
			return true
		}
	}
	return false
}

func containsFold(set map[string]bool, id string) bool {
	for k, v := range set {
		if v && strutil.EqualFold(k, id) {
			return true
		}
	}
	return false
}
