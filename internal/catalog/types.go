// Package catalog implements the mod catalog entity model (Mod, ModVersion,
// ModVersionType, ModGameVersion, ModFile, ModDownload, ModImage,
// ModScreenshot, ModVideo, ModTeam) and its owning collection, round-trippable
// through JSON and XML (spec §3, §4.1, §4.2).
package catalog

import "time"

// ModFile describes a single file belonging to a ModGameVersion.
type ModFile struct {
	FileName string
	Type     string // lowercase extension taxonomy: grp, zip, con, def, map, dmo, rts, ...
	SHA1     string
	Shared   bool // legitimately linked by more than one ModVersion of the same Mod

	parent *ModGameVersion
}

// Parent returns the owning ModGameVersion, or nil if unattached.
func (f *ModFile) Parent() *ModGameVersion { return f.parent }

// ModDownload describes a downloadable artifact for a Mod.
type ModDownload struct {
	FileName      string
	Type          string // "Original Files", "Mod Manager Files", ...
	Version       string // optional link to a ModVersion.Version
	GameVersionID string // optional
	SHA1          string
	Repaired      bool
	PartNumber    int // 0 when not part of a multi-part download
	PartCount     int

	parent *Mod
}

func (d *ModDownload) Parent() *Mod { return d.parent }

// ModImage describes an image asset (screenshots specialize this).
type ModImage struct {
	FileName  string
	FileSize  int64
	Width     int
	Height    int
	SHA1      string
	Subfolder string
	Caption   string
	Type      string

	parent *Mod
}

func (i *ModImage) Parent() *Mod { return i.parent }

// ModScreenshot is a ModImage specialization; identical shape, distinct slice
// in Mod so screenshot/image uniqueness (spec invariant #3) is enforced
// separately.
type ModScreenshot = ModImage

// ModVideo describes an externally hosted video.
type ModVideo struct {
	URL    string
	Title  string
	Width  int
	Height int

	parent *Mod
}

func (v *ModVideo) Parent() *Mod { return v.parent }

// ModTeamMember is one member of a ModTeam.
type ModTeamMember struct {
	Name    string
	Alias   string
	Website string
	Email   string

	parent *ModTeam
}

func (m *ModTeamMember) Parent() *ModTeam { return m.parent }

// ModTeam is a mod's credited team.
type ModTeam struct {
	Name    string
	Members []ModTeamMember

	parent *Mod
}

func (t *ModTeam) Parent() *Mod { return t.parent }

// relink fixes every member's back-pointer to t. Must run after any mutation
// of t.Members (append, copy, load from JSON/XML).
func (t *ModTeam) relink() {
	for i := range t.Members {
		t.Members[i].parent = t
	}
}

// ModGameVersion links a ModVersionType to a supported engine build and lists
// the files that version-type ships for it.
type ModGameVersion struct {
	GameVersionID string
	Files         []ModFile

	parent *ModVersionType
}

func (g *ModGameVersion) Parent() *ModVersionType { return g.parent }

// GetGameVersionID implements gameversion.ModGameVersionRef.
func (g *ModGameVersion) GetGameVersionID() string { return g.GameVersionID }

// relink fixes every file's back-pointer to g.
func (g *ModGameVersion) relink() {
	for i := range g.Files {
		g.Files[i].parent = g
	}
}

// ModVersionType is a variant of a ModVersion (e.g. "", "Full", "Demo").
type ModVersionType struct {
	Type         string
	GameVersions []ModGameVersion

	parent *ModVersion
}

func (t *ModVersionType) Parent() *ModVersion { return t.parent }

func (t *ModVersionType) relink() {
	for i := range t.GameVersions {
		t.GameVersions[i].parent = t
		t.GameVersions[i].relink()
	}
}

// ModVersion is one release of a Mod.
type ModVersion struct {
	Version     string // may be empty to denote the base version
	ReleaseDate *time.Time
	Repaired    bool
	Types       []ModVersionType

	parent *Mod
}

func (v *ModVersion) Parent() *Mod { return v.parent }

func (v *ModVersion) relink() {
	for i := range v.Types {
		v.Types[i].parent = v
		v.Types[i].relink()
	}
}

// Mod is a user-created content package for a supported engine.
type Mod struct {
	ID                 string
	Name               string
	Type               string
	PreferredVersion   string
	DefaultVersionType string
	Website            string
	Team               *ModTeam
	Versions           []ModVersion
	Downloads          []ModDownload
	Screenshots        []ModScreenshot
	Images             []ModImage
	Videos             []ModVideo
	Notes              []string
	RelatedMods        []string // mod ids
}

// Relink re-establishes every child's parent back-pointer to m. Must be
// called after constructing or mutating a Mod by hand, after a deep copy, or
// after load from JSON/XML (spec invariant #9, "back-pointer integrity").
func (m *Mod) Relink() {
	for i := range m.Versions {
		m.Versions[i].parent = m
		m.Versions[i].relink()
	}
	for i := range m.Downloads {
		m.Downloads[i].parent = m
	}
	for i := range m.Screenshots {
		m.Screenshots[i].parent = m
	}
	for i := range m.Images {
		m.Images[i].parent = m
	}
	for i := range m.Videos {
		m.Videos[i].parent = m
	}
	if m.Team != nil {
		m.Team.parent = m
		m.Team.relink()
	}
}

// ModIdentifier is a compact (name, version, versionType) selection
// reference, used as the favourites key.
type ModIdentifier struct {
	Name        string
	Version     string
	VersionType string
}

// Equal reports case-insensitive triple equality.
func (id ModIdentifier) Equal(other ModIdentifier) bool {
	return eqFold(id.Name, other.Name) && eqFold(id.Version, other.Version) && eqFold(id.VersionType, other.VersionType)
}
