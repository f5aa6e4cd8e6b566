// Package gameversion implements the game-version registry (C3): engine
// metadata, command-flag dialect, and the compatibility graph between engine
// builds (spec §3, §4.3).
package gameversion

import "time"

// GameVersion describes one supported engine build (original DOS
// executable, source port, or re-release).
type GameVersion struct {
	ID                   string
	LongName             string
	ShortName            string
	GameExecutableName   string
	SetupExecutableName  string
	GamePath             string
	GroupFileInstallPath string
	ModDirectoryName     string

	ConFileArgumentFlag       string
	GroupFileArgumentFlag     string
	DefFileArgumentFlag       string
	MapFileArgumentFlag       string
	EpisodeArgumentFlag       string
	LevelArgumentFlag         string
	SkillArgumentFlag         string
	RecordDemoArgumentFlag    string
	PlayDemoArgumentFlag      string
	RespawnArgumentFlag       string
	WeaponOrderArgumentFlag   string
	DisableSoundArgumentFlag  string
	DisableMusicArgumentFlag  string
	DisableMonstersArgumentFlag string

	SkillStartValue int // engines differ on whether skill 0 or 1 is "easy"; must be <= 255

	LocalWorkingDirectory    bool
	RelativeConFilePath      bool
	SupportsSubdirectories   bool
	WorldTourGroupSupported  bool
	RequiresCombinedGroup    bool
	RequiresGroupFileExtraction bool
	RequiresDOSBox           bool

	SupportedOperatingSystems map[string]bool
	CompatibleGameVersionIDs  map[string]bool

	Website        string
	SourceCodeURL  string
	Notes          string

	// Runtime-only fields (spec §3, §9 supplemented feature 1).
	InstalledTimePoint *time.Time
	LastPlayedTimePoint *time.Time
	StandAlone bool
	Base       bool
	Modified   bool

	onModified func(*GameVersion)
}

// MarkModified flips the runtime Modified flag and notifies the owning
// Collection, mirroring the source's "modification of any GameVersion raises
// a modified signal consumed by the collection" (spec §3 Ownership notes).
func (g *GameVersion) MarkModified() {
	g.Modified = true
	if g.onModified != nil {
		g.onModified(g)
	}
}

// IsConfigured reports whether gamePath points at something on disk. The
// registry's "onlyConfigured" filters use this; staging (C7) performs the
// real existence+validity check, this is the coarse registry-level gate.
func (g *GameVersion) IsConfigured(exists func(path string) bool) bool {
	return g.GamePath != "" && exists != nil && exists(g.GamePath)
}

// TreatsZipAsGroupFile reports whether this engine accepts zip archives in
// place of GRP group files (the eDuke32 family). Collection's
// TreatsZipAsGroupFile wraps it by id to implement catalog.EngineClassifier.
func (g *GameVersion) TreatsZipAsGroupFile() bool {
	switch g.ID {
	case "eduke32", "netduke32", "raze", "rednukem":
		return true
	default:
		return false
	}
}
